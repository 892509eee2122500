package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reconerrors "coderecon/internal/errors"
	"coderecon/internal/model"
	"coderecon/internal/snapshot"
)

func analysis(id string, sigs ...model.AggregatedSignal) *snapshot.Analysis {
	return &snapshot.Analysis{ScanID: id, Signals: sigs}
}

func sig(path, typ, fn, cas string) model.AggregatedSignal {
	return model.AggregatedSignal{Path: path, Type: typ, Function: fn, Case: cas, Count: 1}
}

func TestCompare_V1(t *testing.T) {
	prev := analysis("p",
		sig("a.py", "untested_function", "f", ""),
		sig("a.py", "potential_edge_case", "g", "Loop execution"),
	)
	cur := analysis("c",
		sig("a.py", "potential_edge_case", "g", "Math risk"),
		sig("b.py", "untested_function", "h", ""),
	)

	r := Compare(cur, prev, PolicyV1)
	assert.Equal(t, StatusCompared, r.Status)
	assert.Equal(t, "c", r.CurrentScanID)
	assert.Equal(t, "p", r.PreviousScanID)

	// g changed case only, which v1 ignores
	assert.Equal(t, []Fingerprint{{Path: "b.py", Type: "untested_function", Function: "h"}}, r.Added)
	assert.Equal(t, []Fingerprint{{Path: "a.py", Type: "untested_function", Function: "f"}}, r.Removed)
	assert.Equal(t, 1, r.AddedCount)
	assert.Equal(t, 1, r.RemovedCount)
}

func TestCompare_V2SeesCaseChanges(t *testing.T) {
	prev := analysis("p", sig("a.py", "potential_edge_case", "g", "Loop execution"))
	cur := analysis("c", sig("a.py", "potential_edge_case", "g", "Math risk"))

	r := Compare(cur, prev, PolicyV2)
	require.Len(t, r.Added, 1)
	require.Len(t, r.Removed, 1)
	assert.Equal(t, "Math risk", r.Added[0].Case)
	assert.Equal(t, "Loop execution", r.Removed[0].Case)
}

func TestCompare_Identical(t *testing.T) {
	a := analysis("1", sig("a.py", "untested_function", "f", ""))
	b := analysis("2", sig("a.py", "untested_function", "f", ""))

	r := Compare(a, b, "")
	assert.Equal(t, PolicyV1, r.Policy)
	assert.True(t, r.IsEmpty())
	assert.NotNil(t, r.Added)
	assert.NotNil(t, r.Removed)
}

func TestCompare_NoBaseline(t *testing.T) {
	r := Compare(analysis("c", sig("a.py", "untested_function", "f", "")), nil, PolicyV1)
	assert.Equal(t, StatusNoBaseline, r.Status)
	assert.Empty(t, r.Added)
	assert.Zero(t, r.AddedCount)
}

func TestFingerprintKey_NoDelimiterCollision(t *testing.T) {
	a := Fingerprint{Path: "a:b", Type: "c"}
	b := Fingerprint{Path: "a", Type: "b:c"}
	assert.NotEqual(t, a.key(), b.key())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyV1, p)

	p, err = ParsePolicy("V2")
	require.NoError(t, err)
	assert.Equal(t, PolicyV2, p)

	_, err = ParsePolicy("v3")
	assert.Error(t, err)
}

func TestCompareStored(t *testing.T) {
	store := snapshot.NewStoreAt(t.TempDir())

	_, err := CompareStored(store, PolicyV1)
	assert.True(t, reconerrors.HasCode(err, reconerrors.SnapshotMissing))

	first := snapshot.New("/r", nil, nil, nil, nil, nil, []model.AggregatedSignal{sig("a.py", "untested_function", "f", "")})
	require.NoError(t, store.Save(first))

	r, err := CompareStored(store, PolicyV1)
	require.NoError(t, err)
	assert.Equal(t, StatusNoBaseline, r.Status)

	second := snapshot.New("/r", nil, nil, nil, nil, nil, []model.AggregatedSignal{sig("a.py", "untested_function", "g", "")})
	require.NoError(t, store.Save(second))

	r, err = CompareStored(store, PolicyV1)
	require.NoError(t, err)
	assert.Equal(t, StatusCompared, r.Status)
	assert.Equal(t, "g", r.Added[0].Function)
	assert.Equal(t, "f", r.Removed[0].Function)
}

func TestFingerprintString(t *testing.T) {
	assert.Equal(t, "(a.py, untested_function, f)", Fingerprint{Path: "a.py", Type: "untested_function", Function: "f"}.String())
	assert.Equal(t, "(a.py, potential_edge_case, f, Math risk)", Fingerprint{Path: "a.py", Type: "potential_edge_case", Function: "f", Case: "Math risk"}.String())
}
