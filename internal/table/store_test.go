package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EmptyUntilLoad(t *testing.T) {
	s := NewStore(nil)
	assert.NotEmpty(t, s.SessionID())

	_, _, err := s.Current()
	assert.ErrorIs(t, err, ErrNoTable)

	_, err = s.Classification()
	assert.ErrorIs(t, err, ErrNoTable)

	_, err = s.Memo("totals", "", func(*Table) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestStore_LoadRejectsNil(t *testing.T) {
	s := NewStore(nil)
	require.Error(t, s.Load(nil, "x"))

	tab, err := New(Numeric("V", []float64{1}))
	require.NoError(t, err)
	require.NoError(t, s.Load(tab, "x"))

	// A later nil load must not clear the loaded table.
	require.Error(t, s.Load(nil, "y"))
	got, source, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, tab, got)
	assert.Equal(t, "x", source)
}

func TestStore_MemoCachesPerParams(t *testing.T) {
	s := NewStore(nil)
	tab, err := New(Numeric("V", []float64{1, 2}))
	require.NoError(t, err)
	require.NoError(t, s.Load(tab, "test"))

	calls := 0
	compute := func(*Table) (interface{}, error) {
		calls++
		return calls, nil
	}

	v, err := s.Memo("op", "a", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = s.Memo("op", "a", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "identical call must be served from cache")

	v, err = s.Memo("op", "b", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "different params must recompute")
}

func TestStore_MemoInvalidatedByLoad(t *testing.T) {
	s := NewStore(nil)
	first, err := New(Numeric("V", []float64{1}))
	require.NoError(t, err)
	require.NoError(t, s.Load(first, "first"))

	calls := 0
	compute := func(*Table) (interface{}, error) {
		calls++
		return calls, nil
	}

	_, err = s.Memo("op", "", compute)
	require.NoError(t, err)

	second, err := New(Numeric("V", []float64{2}))
	require.NoError(t, err)
	require.NoError(t, s.Load(second, "second"))

	v, err := s.Memo("op", "", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "load must drop cached results")
}

func TestStore_MemoNeverCachesErrors(t *testing.T) {
	s := NewStore(nil)
	tab, err := New(Numeric("V", []float64{1}))
	require.NoError(t, err)
	require.NoError(t, s.Load(tab, "test"))

	boom := errors.New("boom")
	calls := 0
	_, err = s.Memo("op", "", func(*Table) (interface{}, error) {
		calls++
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := s.Memo("op", "", func(*Table) (interface{}, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestSample(t *testing.T) {
	s := Sample()
	require.Equal(t, 24, s.NumRows())
	assert.Equal(t, []string{"Date", "Category", "Branch", "Sales", "Quantity", "Profit"}, s.Names())

	cl := s.Classify()
	assert.Contains(t, cl.Temporal, "Date")
	assert.Contains(t, cl.Numeric, "Sales")
	assert.Contains(t, cl.Categorical, "Branch")

	// Deterministic generation: two samples are content-identical.
	assert.Equal(t, s.Fingerprint(), Sample().Fingerprint())
}
