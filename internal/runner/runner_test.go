package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zigj/internal/report"
	"github.com/roach88/zigj/internal/testutil"
)

func runFile(t *testing.T, path string) *Result {
	t.Helper()

	sf, err := LoadSuite(path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := Run(ctx, sf, nil, WithRunIDGenerator(testutil.NewFixedRunIDGenerator("run-golden")))
	require.NoError(t, err)
	return result
}

func TestRun_Golden(t *testing.T) {
	result := runFile(t, "testdata/suites/basic.yaml")

	assert.Equal(t, 4, result.Passed)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.Pass)

	AssertGolden(t, "basic", result)
}

func TestRun_CUE(t *testing.T) {
	result := runFile(t, "testdata/suites/records.cue")

	assert.True(t, result.Pass)
	require.Len(t, result.Events, 2)
	assert.Equal(t, "same record", result.Events[0].Test)
	assert.Equal(t, "async record", result.Events[1].Test)
	assert.Equal(t, "different names", result.Events[1].Message)
}

func TestRun_ForwardsToReporter(t *testing.T) {
	sf, err := ParseYAML([]byte(`
name: forward
tests:
  - name: one
    checks:
      - type: truthy
        left: 0
`))
	require.NoError(t, err)

	rec := report.NewRecorder()
	result, err := Run(context.Background(), sf, rec)
	require.NoError(t, err)

	assert.Equal(t, result.Events, rec.Events())
	assert.Equal(t, report.Counts{Failed: 1}, result.Counts())
	assert.NotEmpty(t, result.RunID)
}

func TestRun_ContextExpiresOnStalledSuite(t *testing.T) {
	sf, err := ParseYAML([]byte(`
name: slow
tests:
  - name: sleepy
    async: true
    delay: 1h
    checks:
      - type: truthy
        left: true
`))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := Run(ctx, sf, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, result)
	assert.False(t, result.Pass)
	assert.Empty(t, result.Events)
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero", 0, false},
		{"int", 3, true},
		{"zero float", 0.0, false},
		{"empty string", "", false},
		{"string", "x", true},
		{"empty seq", []any{}, false},
		{"seq", []any{nil}, true},
		{"empty map", map[string]any{}, false},
		{"map", map[string]any{"a": nil}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truthy(tt.in))
		})
	}
}

func TestLoadSuite_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), ErrCodeNotFound},
		{"unsupported", write("suite.json", `{}`), ErrCodeUnsupported},
		{"unknown field", write("typo.yaml", "name: x\ntest: []\n"), ErrCodeParse},
		{"bad cue", write("bad.cue", "name: "), ErrCodeCUE},
		{"incomplete cue", write("open.cue", "name: string\ntests: []\n"), ErrCodeCUE},
		{"no name", write("noname.yaml", "tests: [{name: a, checks: [{type: truthy, left: 1}]}]\n"), ErrCodeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuite(tt.path)
			require.Error(t, err)

			le, ok := IsLoadError(err)
			require.True(t, ok, "expected LoadError, got %T: %v", err, err)
			assert.Equal(t, tt.code, le.Code)
			assert.Equal(t, tt.path, le.Path)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no tests",
			yaml:    "name: x\n",
			wantErr: "tests list is required",
		},
		{
			name:    "test without name",
			yaml:    "name: x\ntests: [{checks: [{type: truthy, left: 1}]}]\n",
			wantErr: "tests[0]: name is required",
		},
		{
			name:    "test without checks",
			yaml:    "name: x\ntests: [{name: a}]\n",
			wantErr: `test "a": at least one check is required`,
		},
		{
			name:    "unknown check type",
			yaml:    "name: x\ntests: [{name: a, checks: [{type: approx, left: 1, right: 1}]}]\n",
			wantErr: `unknown check type "approx"`,
		},
		{
			name:    "missing type",
			yaml:    "name: x\ntests: [{name: a, checks: [{left: 1}]}]\n",
			wantErr: "type is required",
		},
		{
			name:    "equal without right",
			yaml:    "name: x\ntests: [{name: a, checks: [{type: equal, left: 1}]}]\n",
			wantErr: "equal requires left and right",
		},
		{
			name:    "truthy with right",
			yaml:    "name: x\ntests: [{name: a, checks: [{type: truthy, left: 1, right: 2}]}]\n",
			wantErr: "truthy does not take right",
		},
		{
			name:    "delay on sync test",
			yaml:    "name: x\ntests: [{name: a, delay: 1ms, checks: [{type: truthy, left: 1}]}]\n",
			wantErr: "delay only applies to async tests",
		},
		{
			name:    "bad delay",
			yaml:    "name: x\ntests: [{name: a, async: true, delay: soon, checks: [{type: truthy, left: 1}]}]\n",
			wantErr: "invalid delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			le, ok := IsLoadError(err)
			require.True(t, ok)
			assert.Equal(t, ErrCodeInvalid, le.Code)
		})
	}
}

func TestValidate_ExplicitNullIsAnOperand(t *testing.T) {
	sf, err := ParseYAML([]byte("name: x\ntests: [{name: a, checks: [{type: equal, left: null, right: ~}]}]\n"))
	require.NoError(t, err)

	result, err := Run(context.Background(), sf, nil)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestFindSuiteFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "c.cue", "d.txt", "sub/e.yaml"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	files, err := FindSuiteFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, files, 4)

	files, err = FindSuiteFiles(dir, "[ab]")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yml")}, files)

	single := filepath.Join(dir, "d.txt")
	files, err = FindSuiteFiles(single, "")
	require.NoError(t, err)
	assert.Equal(t, []string{single}, files)

	_, err = FindSuiteFiles(filepath.Join(dir, "missing"), "")
	le, ok := IsLoadError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestMarshalSnapshot_EmptyEvents(t *testing.T) {
	data, err := MarshalSnapshot(&Result{Suite: "s", RunID: "r", Pass: true})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"events": []`)
}
