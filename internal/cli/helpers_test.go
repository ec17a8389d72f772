package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const passingSuite = `name: passing
tests:
  - name: arrays
    checks:
      - type: equal
        left: [1, 2, 3]
        right: [1, 2, 3]
        message: identical arrays
`

const failingSuite = `name: failing
tests:
  - name: doublethink
    checks:
      - type: equal
        left: 4
        right: 5
        message: two plus two equals five
`

const asyncSuite = `name: "async"
tests: [{
	name:  "later"
	async: true
	delay: "2ms"
	checks: [{type: "truthy", left: true, message: "from timer"}]
}]
`

// writeSuites writes name → content files into a temp dir and returns it.
func writeSuites(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
