package cli

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/kenjiO/repo-activity/pkg/buildinfo"
	"github.com/kenjiO/repo-activity/pkg/errors"
	"github.com/kenjiO/repo-activity/pkg/integrations/github"
)

// mcpCommand creates the mcp command.
func (c *CLI) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP (Model Context Protocol) server",
		Long:  `Run an MCP server over stdio that exposes the latest_commit_date tool.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.ServeStdio(c.newMCPServer())
		},
	}
}

// newMCPServer builds the MCP server with its tools registered.
func (c *CLI) newMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		buildinfo.Name,
		buildinfo.Version,
		server.WithToolCapabilities(false),
	)

	latestTool := mcp.NewTool("latest_commit_date",
		mcp.WithDescription("Get the author date of the most recent commit of a GitHub repository"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in owner/name form, e.g. pallets/flask"),
		),
	)
	s.AddTool(latestTool, c.latestCommitHandler(c.newClient()))

	return s
}

// latestCommitHandler returns lookup failures as tool errors so the model
// sees the message. Requests arrive on the stdio server's context, so the
// CLI logger is attached to each one.
func (c *CLI) latestCommitHandler(client *github.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = withLogger(ctx, c.Logger)
		repo, err := github.CheckRepoName(request.GetArguments()["repo"])
		if err != nil {
			return mcp.NewToolResultError(errors.UserMessage(err)), nil
		}

		date, err := c.lookup(ctx, client, repo)
		if err != nil {
			return mcp.NewToolResultError(errors.UserMessage(err)), nil
		}
		return mcp.NewToolResultText(date), nil
	}
}
