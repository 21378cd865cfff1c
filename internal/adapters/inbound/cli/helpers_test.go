package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/dqscore/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/require"
)

const ordersJSON = `[
  {"id": 1, "email": "a@example.com", "amount": 10},
  {"id": 2, "email": "bad", "amount": 20},
  {"id": 3, "email": null, "amount": 30},
  {"id": 3, "email": "d@example.com", "amount": 40}
]`

const ordersConfig = `dataset: orders
constraints:
  - field: email
    kind: required
  - field: email
    kind: format
    format: email
    nullable: true
  - field: id
    kind: unique
`

// fixture writes orders.json and its config into a fresh directory and
// returns the records path.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(ordersJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dqscore.yaml"), []byte(ordersConfig), 0644))
	return path
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
