package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/abdidvp/dqscore/internal/adapters/inbound/mcp"
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

func newServer(t *testing.T) (*server.MCPServer, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte(ordersJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dqscore.yaml"), []byte(ordersConfig), 0644))
	return mcpadapter.NewDQScoreMCPServer(mcpadapter.Options{Root: dir, Records: "orders.json"}), dir
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	tool, ok := s.ListTools()[name]
	require.True(t, ok, "tool %q should be registered", name)

	req := mcplib.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewDQScoreMCPServer(t *testing.T) {
	s := mcpadapter.NewDQScoreMCPServer(mcpadapter.Options{})
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s, _ := newServer(t)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"dq_score",
		"dq_validate",
		"dq_similarity",
		"dq_stats",
		"dq_drift",
		"dq_duplicates",
	}
	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}
	assert.Len(t, tools, len(expectedTools))
}

func TestScoreTool(t *testing.T) {
	s, _ := newServer(t)
	res := callTool(t, s, "dq_score", map[string]any{"records": "orders.json"})
	require.False(t, res.IsError, resultText(t, res))

	var report struct {
		Dataset      string  `json:"dataset"`
		OverallScore float64 `json:"overall_score"`
		Grade        string  `json:"grade"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.Equal(t, "orders", report.Dataset)
	assert.InDelta(t, (75.0+200.0/3.0+75.0)/3.0, report.OverallScore, 1e-6)
	assert.Equal(t, "B", report.Grade)
}

func TestScoreTool_MissingRecordsArgument(t *testing.T) {
	s, _ := newServer(t)
	res := callTool(t, s, "dq_score", map[string]any{})
	assert.True(t, res.IsError)
}

func TestValidateTool_FailedOnly(t *testing.T) {
	s, _ := newServer(t)
	res := callTool(t, s, "dq_validate", map[string]any{"records": "orders.json", "failed_only": true})
	require.False(t, res.IsError, resultText(t, res))

	var summary struct {
		Failed  int               `json:"failed"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &summary))
	assert.Equal(t, 3, summary.Failed)
	assert.Len(t, summary.Results, 3)
}

func TestSimilarityTool(t *testing.T) {
	s, _ := newServer(t)
	res := callTool(t, s, "dq_similarity", map[string]any{"a": "kitten", "b": "sitting", "metric": "levenshtein"})
	require.False(t, res.IsError, resultText(t, res))

	var out struct {
		Metric string  `json:"metric"`
		Score  float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "levenshtein", out.Metric)
	assert.InDelta(t, 1-3.0/7.0, out.Score, 1e-9)

	bad := callTool(t, s, "dq_similarity", map[string]any{"a": "x", "b": "y", "metric": "cosine"})
	assert.True(t, bad.IsError)
}

func TestStatsTool(t *testing.T) {
	s, _ := newServer(t)
	res := callTool(t, s, "dq_stats", map[string]any{"records": "orders.json", "fields": "amount"})
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), `"field": "amount"`)
	assert.Contains(t, resultText(t, res), `"mean": 25`)
}

func TestDriftTool_NoBaseline(t *testing.T) {
	s, _ := newServer(t)
	res := callTool(t, s, "dq_drift", map[string]any{"records": "orders.json"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "no baseline")
}

func TestDuplicatesTool(t *testing.T) {
	s, _ := newServer(t)
	res := callTool(t, s, "dq_duplicates", map[string]any{"records": "orders.json", "field": "email", "threshold": 0.95})
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), `"near"`)
}
