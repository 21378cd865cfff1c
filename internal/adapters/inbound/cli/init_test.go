package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_CreatesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created .dqscore.yaml")

	cfg, err := config.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), cfg.Dataset)
	assert.Empty(t, cfg.Constraints)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "init", dir)
	require.NoError(t, err)

	_, err = run(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "init", dir, "--force")
	assert.NoError(t, err)
}

func TestInitCommand_InfersConstraints(t *testing.T) {
	sample := fixture(t)
	dir := t.TempDir()

	out, err := run(t, "init", dir, "--from", sample)
	require.NoError(t, err)
	assert.Contains(t, out, "with 5 constraints")

	cfg, err := config.New().Load(dir)
	require.NoError(t, err)
	fcs, err := cfg.FieldConstraints()
	require.NoError(t, err)

	var got []string
	for _, fc := range fcs {
		got = append(got, fc.Label())
	}
	assert.Equal(t, []string{
		"required(id)", "type(id)",
		"type(email)",
		"required(amount)", "type(amount)",
	}, got)
	assert.True(t, fcs[2].Nullable, "email has a null")

	data, err := os.ReadFile(filepath.Join(dir, ".dqscore.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# dqscore configuration")
}

func TestMCPCommandExists(t *testing.T) {
	_, err := run(t, "mcp", "--help")
	assert.NoError(t, err)
}

func TestMCPServeCommandExists(t *testing.T) {
	_, err := run(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
