package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
	"github.com/hazyhaar/abbrev-registry/pkg/dict"
	"github.com/hazyhaar/abbrev-registry/pkg/kit"
)

// MaxBatch is the largest number of keys accepted in one batch call.
const MaxBatch = 100

// ErrInvalidRequest marks request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Shared request/response types used by both HTTP and MCP transports.

type abbreviateReq struct {
	Category     string `json:"category"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
	Key          string `json:"key"`
}

type abbreviateResult struct {
	Key          string `json:"key"`
	Category     string `json:"category"`
	Jurisdiction string `json:"jurisdiction"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Abbreviated  bool   `json:"abbreviated"`
}

type batchReq struct {
	Requests []abbreviateReq `json:"requests"`
}

type batchResponse struct {
	Results  []abbreviateResult `json:"results"`
	Recorded abbrev.Snapshot    `json:"recorded"`
}

type runResolveReq struct {
	RunID string
	abbreviateReq
}

type runReq struct {
	RunID string
}

type beginRunResponse struct {
	RunID string `json:"run_id"`
}

type dictsResponse struct {
	Lists []dict.ListInfo `json:"lists"`
}

// endpoints holds every kit.Endpoint of the service, wrapped with logging.
type endpoints struct {
	abbreviate kit.Endpoint
	batch      kit.Endpoint
	beginRun   kit.Endpoint
	runResolve kit.Endpoint
	runGet     kit.Endpoint
	runReset   kit.Endpoint
	runEnd     kit.Endpoint
	listDicts  kit.Endpoint
}

func newEndpoints(reg *dict.Registry, runs *RunStore, logger *slog.Logger) *endpoints {
	wrap := func(name string, e kit.Endpoint) kit.Endpoint {
		return kit.Logging(logger, name)(e)
	}
	return &endpoints{
		abbreviate: wrap("abbreviate", abbreviateEndpoint(reg)),
		batch:      wrap("abbreviate_batch", batchEndpoint(reg)),
		beginRun:   wrap("begin_run", beginRunEndpoint(runs)),
		runResolve: wrap("run_resolve", runResolveEndpoint(runs)),
		runGet:     wrap("run_get", runGetEndpoint(runs)),
		runReset:   wrap("run_reset", runResetEndpoint(runs)),
		runEnd:     wrap("run_end", runEndEndpoint(runs)),
		listDicts:  wrap("list_dicts", listDictsEndpoint(reg)),
	}
}

// validate checks the category and fills the default jurisdiction.
func (r *abbreviateReq) validate() (abbrev.Category, error) {
	c, err := abbrev.ParseCategory(r.Category)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	r.Jurisdiction = strings.TrimSpace(r.Jurisdiction)
	if r.Jurisdiction == "" {
		r.Jurisdiction = abbrev.DefaultJurisdiction
	}
	return c, nil
}

func result(req abbreviateReq, abbr string, ok bool) abbreviateResult {
	return abbreviateResult{
		Key:          req.Key,
		Category:     req.Category,
		Jurisdiction: req.Jurisdiction,
		Abbreviation: abbr,
		Abbreviated:  ok,
	}
}

// abbreviateEndpoint resolves one key in a throwaway run.
func abbreviateEndpoint(reg *dict.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*abbreviateReq)
		c, err := req.validate()
		if err != nil {
			return nil, err
		}
		abbr, ok := abbrev.Resolve(reg.Dictionary(), nil, c, req.Jurisdiction, req.Key)
		return result(*req, abbr, ok), nil
	}
}

// batchEndpoint resolves up to MaxBatch keys in one run and returns what the
// run recorded.
func batchEndpoint(reg *dict.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*batchReq)
		if len(req.Requests) == 0 {
			return nil, fmt.Errorf("%w: requests array is empty", ErrInvalidRequest)
		}
		if len(req.Requests) > MaxBatch {
			return nil, fmt.Errorf("%w: too many requests (max %d, got %d)", ErrInvalidRequest, MaxBatch, len(req.Requests))
		}
		cats := make([]abbrev.Category, len(req.Requests))
		for i := range req.Requests {
			c, err := req.Requests[i].validate()
			if err != nil {
				return nil, fmt.Errorf("request %d: %w", i, err)
			}
			cats[i] = c
		}

		run := abbrev.NewRun(reg.Dictionary())
		results := make([]abbreviateResult, len(req.Requests))
		for i, r := range req.Requests {
			abbr, ok := run.Resolve(cats[i], r.Jurisdiction, r.Key)
			results[i] = result(r, abbr, ok)
		}
		return batchResponse{Results: results, Recorded: run.Recorded()}, nil
	}
}

func beginRunEndpoint(runs *RunStore) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return beginRunResponse{RunID: runs.Begin()}, nil
	}
}

func runResolveEndpoint(runs *RunStore) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*runResolveReq)
		c, err := req.validate()
		if err != nil {
			return nil, err
		}
		abbr, ok, err := runs.Resolve(req.RunID, c, req.Jurisdiction, req.Key)
		if err != nil {
			return nil, err
		}
		return result(req.abbreviateReq, abbr, ok), nil
	}
}

func runGetEndpoint(runs *RunStore) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		return runs.Recorded(request.(*runReq).RunID)
	}
}

func runResetEndpoint(runs *RunStore) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		id := request.(*runReq).RunID
		if err := runs.Reset(id); err != nil {
			return nil, err
		}
		return beginRunResponse{RunID: id}, nil
	}
}

func runEndEndpoint(runs *RunStore) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		if err := runs.End(request.(*runReq).RunID); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func listDictsEndpoint(reg *dict.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return dictsResponse{Lists: reg.ListDicts()}, nil
	}
}
