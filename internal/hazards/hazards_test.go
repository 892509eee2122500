package hazards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderecon/internal/config"
	"coderecon/internal/model"
)

func TestDetect_LengthRule(t *testing.T) {
	cfg := config.DefaultConfig().Hazards
	fns := []model.FunctionRecord{
		{Name: "small", Path: "/gone/a.py", LineStart: 1, LineEnd: 51, Language: "python"},
		{Name: "large", Path: "/gone/a.py", LineStart: 60, LineEnd: 111, Language: "python"},
		{Name: "huge", Path: "/gone/a.py", LineStart: 200, LineEnd: 301, Language: "python"},
		{Name: "pattern", Path: "/gone/b.rb", LineStart: 3, Language: "ruby"},
	}

	got, err := Detect(context.Background(), fns, cfg, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "large", got[0].Function)
	assert.Equal(t, RuleLargeFunction, got[0].RuleID)
	assert.Equal(t, "Large Function", got[0].Case)
	assert.Equal(t, model.SeverityMedium, got[0].Severity)
	assert.Equal(t, "Function is 51 lines long. Suggest refactoring.", got[0].Reason)
	assert.Equal(t, 60, got[0].Line)

	assert.Equal(t, "huge", got[1].Function)
	assert.Equal(t, model.SeverityHigh, got[1].Severity)
}

func TestDetect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Detect(ctx, []model.FunctionRecord{{Name: "f", Path: "/x.py"}}, config.DefaultConfig().Hazards, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetect_Empty(t *testing.T) {
	got, err := Detect(context.Background(), nil, config.DefaultConfig().Hazards, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSortFindings(t *testing.T) {
	findings := []model.EdgeCaseFinding{
		{Path: "b.py", Line: 1, RuleID: RuleLoop},
		{Path: "a.py", Line: 9, RuleID: RuleLoop},
		{Path: "a.py", Line: 2, RuleID: RuleDivision},
		{Path: "a.py", Line: 2, RuleID: RuleDeepNesting},
	}
	SortFindings(findings)

	assert.Equal(t, RuleDeepNesting, findings[0].RuleID)
	assert.Equal(t, RuleDivision, findings[1].RuleID)
	assert.Equal(t, 9, findings[2].Line)
	assert.Equal(t, "b.py", findings[3].Path)
}
