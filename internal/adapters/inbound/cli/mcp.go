package cli

import (
	mcpadapter "github.com/abdidvp/dqscore/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the dqscore MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	var (
		root        string
		recordsPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start dqscore MCP server (stdio)",
		Long:  "Start the dqscore MCP server using stdio transport. Assistants can score, validate and profile datasets under --root.",
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := absPath(root)
			if err != nil {
				return err
			}
			s := mcpadapter.NewDQScoreMCPServer(mcpadapter.Options{
				Root:    abs,
				Records: recordsPath,
				Version: version,
				Logger:  opts.logger,
			})
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Directory relative record paths resolve against")
	cmd.Flags().StringVar(&recordsPath, "records", "", "Dataset served as the dq://report resource")

	return cmd
}
