package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coderecon/internal/model"
	"coderecon/internal/snapshot"
)

func fixture() *snapshot.Analysis {
	return &snapshot.Analysis{
		Root: "/r",
		Signals: []model.AggregatedSignal{
			{Type: "untested_function", Path: "/r/app/a.py", Function: "f"},
			{Type: "large_function", Path: "/r/app/a.py", Function: "f"},
			{Type: "untested_function", Path: "/r/app/sub/b.py", Function: "g"},
			{Type: "untested_function", Path: "/r/application.py", Function: "h"},
			{Type: "untested_function", Path: model.Unknown, Function: "x"},
		},
		EdgeCases: []model.EdgeCaseFinding{
			{RuleID: "CR2001", Path: "/r/app/a.py", Function: "f"},
		},
	}
}

func TestByFile(t *testing.T) {
	s := ByFile(fixture(), "app/a.py")
	assert.Equal(t, "/r/app/a.py", s.Target)
	assert.Equal(t, KindFile, s.Kind)
	assert.Equal(t, 2, s.SignalCount)
	assert.Equal(t, 1, s.FileCount)
	assert.Len(t, s.EdgeCases, 1)

	s = ByFile(fixture(), "/r/app/a.py")
	assert.Equal(t, 2, s.SignalCount)
}

func TestByDirectory(t *testing.T) {
	s := ByDirectory(fixture(), "/r/app")
	assert.Equal(t, KindDirectory, s.Kind)
	assert.Equal(t, 3, s.SignalCount)
	assert.Equal(t, 2, s.FileCount)

	s = ByDirectory(fixture(), "app/sub/")
	assert.Equal(t, 1, s.SignalCount)
}

func TestByDirectory_NoMatch(t *testing.T) {
	s := ByDirectory(fixture(), "/elsewhere")
	assert.Zero(t, s.SignalCount)
	assert.NotNil(t, s.Signals)
	assert.NotNil(t, s.EdgeCases)
}
