package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderecon/internal/config"
	reconerrors "coderecon/internal/errors"
	"coderecon/internal/model"
	"coderecon/internal/testutil"
)

var sampleTree = map[string]string{
	"app/calc.py": `def add(a, b):
    return a + b

def ratio(a, b):
    for i in range(3):
        a = a / b
    return a
`,
	"tests/test_calc.py": `from app.calc import add

def test_add():
    assert add(1, 2) == 3
`,
	"node_modules/lib/index.js": "function ignored() {}\n",
	"README.md":                 "# readme\n",
}

func TestRun(t *testing.T) {
	root := testutil.WriteTree(t, sampleTree)

	a, err := New(nil, nil).Run(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, a.Files, 2)
	assert.Equal(t, filepath.Join(root, "app", "calc.py"), a.Files[0].Path)

	var names []string
	for _, fn := range a.Functions {
		names = append(names, fn.Name)
	}
	assert.ElementsMatch(t, []string{"add", "ratio", "test_add"}, names)

	require.Len(t, a.Tests, 1)
	assert.Equal(t, "test_add", a.Tests[0].TestName)
	assert.Equal(t, "tests/test_calc.py", a.Tests[0].Path)

	assert.NotEmpty(t, a.Signals)
	assert.NotEmpty(t, a.SignalsRaw)
	assert.InDelta(t, 1.0/3.0, a.TestRatio, 1e-9)
	assert.NotEmpty(t, a.ScanID)
	assert.Equal(t, root, a.Root)

	total := 0
	for _, s := range a.Signals {
		total += s.Count
	}
	assert.Equal(t, len(a.SignalsRaw), total)
}

func TestRun_Deterministic(t *testing.T) {
	root := testutil.WriteTree(t, sampleTree)
	cfg := config.DefaultConfig()
	cfg.Extract.BatchSize = 1
	cfg.Extract.Workers = 4

	first, err := New(cfg, nil).Run(context.Background(), root)
	require.NoError(t, err)
	second, err := New(cfg, nil).Run(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, first.Functions, second.Functions)
	assert.Equal(t, first.Signals, second.Signals)
	assert.Equal(t, first.Digest, second.Digest)
}

func TestRun_MissingRoot(t *testing.T) {
	a, err := New(nil, nil).Run(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, a.Files)
	assert.Empty(t, a.Signals)
}

func TestRun_Cancelled(t *testing.T) {
	root := testutil.WriteTree(t, sampleTree)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, nil).Run(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_UnreadableRoot(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root can read any directory")
	}
	root := testutil.WriteTree(t, sampleTree)
	require.NoError(t, os.Chmod(root, 0))
	defer func() { _ = os.Chmod(root, 0755) }()

	_, err := New(nil, nil).Run(context.Background(), root)
	assert.True(t, reconerrors.HasCode(err, reconerrors.RootUnreadable), "got %v", err)
}

func TestBatches(t *testing.T) {
	files := make([]model.FileRecord, 5)
	assert.Len(t, Batches(files, 2), 3)
	assert.Len(t, Batches(files, 5), 1)
	assert.Len(t, Batches(files, 0), 1)
	assert.Empty(t, Batches(nil, 2))
}

func TestWorkers(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Extract.Workers = 3
	assert.Equal(t, 3, New(cfg, nil).Workers())

	cfg.Extract.Workers = 0
	n := New(cfg, nil).Workers()
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, maxWorkers)
}
