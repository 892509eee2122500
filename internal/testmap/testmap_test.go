package testmap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderecon/internal/config"
	"coderecon/internal/model"
)

type fakeExtractor map[string][]model.FunctionRecord

func (f fakeExtractor) ExtractFile(_ context.Context, rec model.FileRecord) ([]model.FunctionRecord, error) {
	fns, ok := f[rec.Path]
	if !ok {
		return nil, errors.New("unreadable")
	}
	return fns, nil
}

func TestMatcher_IsTestFile(t *testing.T) {
	m := NewMatcher(config.DefaultConfig().Tests)

	tests := []struct {
		path string
		want bool
	}{
		{"test_api.py", true},
		{"pkg/server_test.go", true},
		{"web/button.test.tsx", true},
		{"web/button.spec.js", true},
		{"src/main/java/FooTest.java", true},
		{"src/main/java/FooTests.java", true},
		{"app/BarTest.kt", true},
		{"tests/conftest.py", true},
		{"a/__tests__/x.js", true},
		{"spec/helper.rb", true},
		{"src/contest.py", false},
		{"src/latest.py", false},
		{"src/testing_utils.py", false},
		{"tests", false},
	}

	for _, tt := range tests {
		if got := m.IsTestFile(tt.path); got != tt.want {
			t.Errorf("IsTestFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatcher_IsTestFunction(t *testing.T) {
	m := NewMatcher(config.DefaultConfig().Tests)

	assert.True(t, m.IsTestFunction("test_login"))
	assert.True(t, m.IsTestFunction("testLogin"))
	assert.True(t, m.IsTestFunction("TestLogin"))
	assert.True(t, m.IsTestFunction("BenchmarkLogin"))
	assert.False(t, m.IsTestFunction("login"))
	assert.False(t, m.IsTestFunction("setUp"))
}

func TestMap(t *testing.T) {
	root := "/repo"
	files := []model.FileRecord{
		{Path: "/repo/tests/test_b.py", Extension: ".py"},
		{Path: "/repo/app/core.py", Extension: ".py"},
		{Path: "/repo/tests/test_a.py", Extension: ".py"},
		{Path: "/repo/tests/test_gone.py", Extension: ".py"},
	}
	ex := fakeExtractor{
		"/repo/tests/test_b.py": {
			{Name: "test_save", Path: "/repo/tests/test_b.py", CalledFunctionNames: []string{"save", "Store"}},
			{Name: "helper", Path: "/repo/tests/test_b.py", CalledFunctionNames: []string{"load"}},
		},
		"/repo/tests/test_a.py": {
			{Name: "test_load", Path: "/repo/tests/test_a.py", CalledFunctionNames: []string{"load"}},
			{Name: "test_empty", Path: "/repo/tests/test_a.py", CalledFunctionNames: []string{}},
		},
		"/repo/app/core.py": {
			{Name: "test_like_but_not_test_file", Path: "/repo/app/core.py"},
		},
	}

	got, err := Map(context.Background(), root, files, config.DefaultConfig().Tests, ex, nil)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "test_empty", got[0].TestName)
	assert.Equal(t, "test_load", got[1].TestName)
	assert.Equal(t, []string{"load"}, got[1].ReferencedFunctionNames)
	assert.Equal(t, "test_save", got[2].TestName)
	assert.Equal(t, []string{"Store", "save"}, got[2].ReferencedFunctionNames)
	assert.Equal(t, "tests/test_a.py", got[0].Path)
	assert.Equal(t, "tests/test_b.py", got[2].Path)

	tested := Tested(got)
	assert.True(t, tested["load"])
	assert.True(t, tested["save"])
	assert.False(t, tested["helper"])
}

func TestMap_RootSegmentsIgnored(t *testing.T) {
	// "test" in the root path itself must not make every file a test file.
	files := []model.FileRecord{{Path: "/home/test/repo/app.py", Extension: ".py"}}
	ex := fakeExtractor{"/home/test/repo/app.py": {{Name: "test_x", Path: "/home/test/repo/app.py"}}}

	got, err := Map(context.Background(), "/home/test/repo", files, config.DefaultConfig().Tests, ex, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMap_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, "/repo", []model.FileRecord{{Path: "/repo/test_a.py"}}, config.DefaultConfig().Tests, fakeExtractor{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
