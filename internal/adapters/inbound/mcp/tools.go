package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain/similarity"
)

// registerTools registers all dqscore MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *services) {
	s.AddTool(
		mcplib.NewTool("dq_score",
			mcplib.WithDescription("Scores a dataset against its .dqscore.yaml constraints and returns the quality report as JSON"),
			mcplib.WithString("records", mcplib.Required(), mcplib.Description("Path to a .json, .jsonl or .csv file")),
			mcplib.WithString("config", mcplib.Description("Path to .dqscore.yaml (default: next to the records)")),
		),
		handleScore(svc),
	)

	s.AddTool(
		mcplib.NewTool("dq_validate",
			mcplib.WithDescription("Runs every constraint against every record and returns the results"),
			mcplib.WithString("records", mcplib.Required(), mcplib.Description("Path to a .json, .jsonl or .csv file")),
			mcplib.WithString("config", mcplib.Description("Path to .dqscore.yaml (default: next to the records)")),
			mcplib.WithBoolean("failed_only", mcplib.Description("Return only failed results")),
		),
		handleValidate(svc),
	)

	s.AddTool(
		mcplib.NewTool("dq_similarity",
			mcplib.WithDescription("Returns the similarity of two strings in [0,1]"),
			mcplib.WithString("a", mcplib.Required(), mcplib.Description("First string")),
			mcplib.WithString("b", mcplib.Required(), mcplib.Description("Second string")),
			mcplib.WithString("metric", mcplib.Description("jaro-winkler (default), levenshtein or jaccard")),
		),
		handleSimilarity(),
	)

	s.AddTool(
		mcplib.NewTool("dq_stats",
			mcplib.WithDescription("Summarizes the numeric fields of a dataset and flags outliers"),
			mcplib.WithString("records", mcplib.Required(), mcplib.Description("Path to a .json, .jsonl or .csv file")),
			mcplib.WithString("fields", mcplib.Description("Comma-separated fields (default: every numeric field)")),
			mcplib.WithNumber("k", mcplib.Description("Outlier factor in standard deviations (default 2)")),
		),
		handleStats(svc),
	)

	s.AddTool(
		mcplib.NewTool("dq_drift",
			mcplib.WithDescription("Compares a dataset against its saved baseline and reports distribution drift per numeric field"),
			mcplib.WithString("records", mcplib.Required(), mcplib.Description("Path to a .json, .jsonl or .csv file")),
			mcplib.WithNumber("threshold", mcplib.Description("Relative mean shift that counts as drift (default 0.19)")),
		),
		handleDrift(svc),
	)

	s.AddTool(
		mcplib.NewTool("dq_duplicates",
			mcplib.WithDescription("Finds exact duplicate records and near duplicates on one field"),
			mcplib.WithString("records", mcplib.Required(), mcplib.Description("Path to a .json, .jsonl or .csv file")),
			mcplib.WithString("field", mcplib.Description("Field compared for near duplicates")),
			mcplib.WithNumber("threshold", mcplib.Description("Minimum similarity of a near duplicate (default 0.9)")),
			mcplib.WithString("ignore", mcplib.Description("Comma-separated fields left out of exact comparison")),
		),
		handleDuplicates(svc),
	)
}

func handleScore(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("records")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		report, err := svc.report.Score(ctx, application.ScoreRequest{
			RecordsPath: svc.resolve(path),
			ConfigPath:  svc.resolve(request.GetString("config", "")),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("scoring failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleValidate(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("records")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		summary, err := svc.validate.Validate(ctx, application.ValidateRequest{
			RecordsPath: svc.resolve(path),
			ConfigPath:  svc.resolve(request.GetString("config", "")),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		if request.GetBool("failed_only", false) {
			summary.Results = summary.Failures()
		}
		return jsonResult(summary)
	}
}

func handleSimilarity() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		a, err := request.RequireString("a")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		b, err := request.RequireString("b")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		metric, err := similarity.ParseMetric(request.GetString("metric", string(similarity.MetricJaroWinkler)))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(map[string]any{
			"metric": metric,
			"score":  similarity.Compare(metric, a, b),
		})
	}
}

func handleStats(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("records")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		rows, err := svc.profile.Stats(ctx, svc.resolve(path), request.GetFloat("k", 0), splitList(request.GetString("fields", ""))...)
		if err != nil {
			return errorResult(fmt.Sprintf("stats failed: %v", err)), nil
		}
		return jsonResult(rows)
	}
}

func handleDrift(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("records")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		req := application.DriftRequest{RecordsPath: svc.resolve(path)}
		if _, set := request.GetArguments()["threshold"]; set {
			threshold := request.GetFloat("threshold", 0)
			req.Threshold = &threshold
		}
		report, err := svc.drift.Check(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("drift check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleDuplicates(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("records")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		report, err := svc.profile.Duplicates(ctx, application.DuplicateRequest{
			RecordsPath: svc.resolve(path),
			Field:       request.GetString("field", ""),
			Threshold:   request.GetFloat("threshold", 0.9),
			Ignore:      splitList(request.GetString("ignore", "")),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("duplicate detection failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
