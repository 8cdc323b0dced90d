package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/moodtrack/pkg/app"
)

// Runner coordinates MCP server startup. The server speaks stdio only.
type Runner struct {
	App     *app.App
	Name    string
	Version string
	Logger  *zap.Logger

	// In and Out default to os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer
}

// Run starts the Model Context Protocol server on stdio.
func Run(ctx context.Context, a *app.App) error {
	r := Runner{
		App:     a,
		Name:    "mood",
		Version: "dev",
	}
	return r.Do(ctx)
}

// NewServer builds the MCP server with every tool and resource registered.
func NewServer(a *app.App, name, version string) *server.MCPServer {
	if name == "" {
		name = "mood"
	}
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Log, read and summarise daily moods via MCP. Dates are YYYY-MM-DD, today or yesterday."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(a)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do executes the runner. It returns when ctx is done or stdin closes.
func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return errors.New("mcp runner requires an app")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	in, out := r.In, r.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	stdio := server.NewStdioServer(NewServer(r.App, r.Name, r.Version))
	stdio.SetErrorLogger(zap.NewStdLog(logger.Named("mcp")))

	logger.Debug("serving mcp on stdio")
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
