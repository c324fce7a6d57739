package api

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
)

func placeDict(value string) *abbrev.Dictionary {
	d := abbrev.NewDictionary()
	d.Add("default", abbrev.PhraseTable(abbrev.Place), "New York", value)
	return d
}

func TestRunStore_Eviction(t *testing.T) {
	d := placeDict("N.Y.")
	runs, err := NewRunStore(2, func() *abbrev.Dictionary { return d })
	require.NoError(t, err)

	first := runs.Begin()
	second := runs.Begin()
	third := runs.Begin()
	assert.Equal(t, 2, runs.Len())
	assert.NotEqual(t, second, third)

	_, err = runs.Recorded(first)
	assert.True(t, errors.Is(err, ErrRunNotFound), "least recently used run is evicted")
	_, err = runs.Recorded(third)
	assert.NoError(t, err)
}

func TestRunStore_InvalidSize(t *testing.T) {
	_, err := NewRunStore(0, nil)
	assert.Error(t, err)
}

func TestRunStore_IDsAreOrdered(t *testing.T) {
	runs, err := NewRunStore(16, abbrev.NewDictionary)
	require.NoError(t, err)

	prev := runs.Begin()
	for i := 0; i < 10; i++ {
		id := runs.Begin()
		assert.Less(t, prev, id, "monotonic ULIDs sort by creation")
		prev = id
	}
}

func TestRunStore_PinsDictionarySnapshot(t *testing.T) {
	current := placeDict("N.Y.")
	runs, err := NewRunStore(4, func() *abbrev.Dictionary { return current })
	require.NoError(t, err)

	id := runs.Begin()
	current = placeDict("NYC")

	got, ok, err := runs.Resolve(id, abbrev.Place, "default", "New York")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "N.Y.", got, "run keeps the dictionary it started with")

	got, _, err = runs.Resolve(runs.Begin(), abbrev.Place, "default", "New York")
	require.NoError(t, err)
	assert.Equal(t, "NYC", got)
}

func TestRunStore_ConcurrentResolve(t *testing.T) {
	d := placeDict("N.Y.")
	runs, err := NewRunStore(4, func() *abbrev.Dictionary { return d })
	require.NoError(t, err)
	id := runs.Begin()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, _, err := runs.Resolve(id, abbrev.Place, "us", "New York"); err != nil {
					t.Error(err)
					return
				}
				if _, err := runs.Recorded(id); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	info, err := runs.Recorded(id)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Entries)
	assert.Equal(t, "N.Y.", info.Recorded["us"][abbrev.Place]["New York"])
}

func TestRunStore_ResetAndEnd(t *testing.T) {
	runs, err := NewRunStore(4, func() *abbrev.Dictionary { return placeDict("N.Y.") })
	require.NoError(t, err)
	id := runs.Begin()

	_, _, err = runs.Resolve(id, abbrev.Place, "default", "New York")
	require.NoError(t, err)
	require.NoError(t, runs.Reset(id))

	info, err := runs.Recorded(id)
	require.NoError(t, err)
	assert.Empty(t, info.Recorded)

	require.NoError(t, runs.End(id))
	assert.ErrorIs(t, runs.End(id), ErrRunNotFound)
	assert.ErrorIs(t, runs.Reset(id), ErrRunNotFound)
	_, _, err = runs.Resolve(id, abbrev.Place, "default", "New York")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
