package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ok := Logging(logger, "abbreviate")(func(ctx context.Context, req any) (any, error) {
		return req, nil
	})
	ctx := WithRequestID(WithTransport(context.Background(), "mcp"), "req-1")
	resp, err := ok(WithRunID(ctx, "01J"), "x")
	if err != nil || resp != "x" {
		t.Fatalf("resp = %v, %v", resp, err)
	}
	line := buf.String()
	for _, want := range []string{"level=DEBUG", "endpoint=abbreviate", "transport=mcp", "request_id=req-1", "run_id=01J"} {
		if !strings.Contains(line, want) {
			t.Errorf("log %q missing %q", line, want)
		}
	}

	buf.Reset()
	boom := errors.New("boom")
	failing := Logging(logger, "run_get")(func(context.Context, any) (any, error) {
		return nil, boom
	})
	if _, err := failing(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	line = buf.String()
	if !strings.Contains(line, "level=WARN") || !strings.Contains(line, "transport=http") || strings.Contains(line, "run_id") {
		t.Errorf("failure log = %q", line)
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	if GetTransport(ctx) != "http" || GetRequestID(ctx) != "" || GetRunID(ctx) != "" {
		t.Error("unexpected defaults")
	}
}
