package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/dqscore/internal/application"
)

const (
	reportURI  = "dq://report"
	historyURI = "dq://history"
)

var errNoDataset = errors.New("server started without a records file")

// registerResources registers the dataset resources on the given server.
func registerResources(s *server.MCPServer, svc *services) {
	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Quality Report",
			mcplib.WithResourceDescription("Current quality report for the served dataset"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(svc),
	)

	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Report History",
			mcplib.WithResourceDescription("Stored report history and overall score trend for the served dataset"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(svc),
	)
}

func handleReportResource(svc *services) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		if svc.records == "" {
			return nil, errNoDataset
		}
		report, err := svc.report.Score(ctx, application.ScoreRequest{RecordsPath: svc.resolve(svc.records)})
		if err != nil {
			return nil, fmt.Errorf("scoring failed: %w", err)
		}
		return jsonContents(reportURI, report)
	}
}

func handleHistoryResource(svc *services) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		if svc.records == "" {
			return nil, errNoDataset
		}
		entries, trend, err := svc.report.History(filepath.Dir(svc.resolve(svc.records)), "")
		if err != nil {
			return nil, err
		}
		return jsonContents(historyURI, map[string]any{
			"entries": entries,
			"trend":   trend,
		})
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
