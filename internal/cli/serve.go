package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/leptomcp/internal/configloader"
	"github.com/yaklabco/leptomcp/internal/logging"
	"github.com/yaklabco/leptomcp/internal/mcp"
)

func newServeCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documentation and analysis tools over MCP",
		Long: `Run the Model Context Protocol server on stdin/stdout.

The server speaks JSON-RPC 2.0, one message per line, and exposes the
documentation registry and the code analyzer as MCP tools. All logging
goes to stderr so the protocol stream stays clean.

Register it with an MCP client, for example in Claude Desktop:

  {
    "mcpServers": {
      "leptos": { "command": "leptomcp", "args": ["serve"] }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, info)
		},
	}

	// Flows through the config loader like any other flag, so MCP
	// client configs can pass it as a plain argument.
	cmd.Flags().String("log-level", "info", "log verbosity: debug, info, warn, error")

	return cmd
}

func runServe(cmd *cobra.Command, info BuildInfo) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Flags:        cmd.Flags(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(cfg.LogLevel)
	}

	server := mcp.NewServer(mcp.Options{
		Version: info.Version,
		Config:  cfg,
		Logger:  logger,
	})

	// A closed client connection ends the loop; an interrupt is a
	// clean shutdown, not a failure.
	if err := server.Serve(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
