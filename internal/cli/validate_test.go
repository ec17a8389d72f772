package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zigj/internal/runner"
)

func TestValidateCommandValid(t *testing.T) {
	dir := writeSuites(t, map[string]string{
		"passing.yaml": passingSuite,
		"async.cue":    asyncSuite,
	})

	out, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "passing (1 tests)")
	assert.Contains(t, out, "async (1 tests)")
}

func TestValidateCommandDoesNotRun(t *testing.T) {
	dir := writeSuites(t, map[string]string{"failing.yaml": failingSuite})

	out, err := execute(t, "validate", dir)
	require.NoError(t, err, "a failing check is still a valid suite")
	assert.NotContains(t, out, "two plus two equals five")
}

func TestValidateCommandInvalid(t *testing.T) {
	dir := writeSuites(t, map[string]string{
		"typo.yaml": "name: typo\ntset: []\n",
	})

	out, err := execute(t, "--format", "json", "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Data ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Files, 1)
	assert.Equal(t, filepath.Join(dir, "typo.yaml"), resp.Data.Files[0].File)
	require.NotNil(t, resp.Data.Files[0].Error)
	assert.Equal(t, runner.ErrCodeParse, resp.Data.Files[0].Error.Code)
}

func TestValidateCommandMissingPath(t *testing.T) {
	_, err := execute(t, "validate", "/nonexistent")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
