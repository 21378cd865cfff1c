package mcp

import (
	"log/slog"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/baseline"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/config"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/history"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/records"
	"github.com/abdidvp/dqscore/internal/application"
)

// Options configures the MCP server.
type Options struct {
	// Root resolves relative record paths passed to tools.
	Root string
	// Records is the dataset served by the dq://report and dq://history
	// resources. Optional.
	Records string
	Version string
	Logger  *slog.Logger
}

type services struct {
	root     string
	records  string
	report   *application.ReportService
	validate *application.ValidateService
	drift    *application.DriftService
	profile  *application.ProfileService
}

// resolve makes path absolute against the server root.
func (s *services) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}

// NewDQScoreMCPServer creates a new MCP server with every dqscore tool and
// resource registered.
func NewDQScoreMCPServer(opts Options) *server.MCPServer {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	src := records.New()
	svc := &services{
		root:     opts.Root,
		records:  opts.Records,
		report:   application.NewReportService(config.New(), src, history.New(), gitinfo.New(), nil, opts.Logger),
		validate: application.NewValidateService(config.New(), src, opts.Logger),
		drift:    application.NewDriftService(src, baseline.New(), opts.Logger),
		profile:  application.NewProfileService(src, opts.Logger),
	}

	s := server.NewMCPServer(
		"dqscore",
		opts.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}
