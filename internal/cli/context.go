package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrz1836/hdkit/internal/config"
	"github.com/mrz1836/hdkit/internal/output"
)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Config     *config.Config
	ConfigPath string
	Logger     *config.Logger
	Fmt        *output.Formatter
}

type cmdContextKey struct{}

// SetCmdContext attaches c to cmd's context.
func SetCmdContext(cmd *cobra.Command, c *CommandContext) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	cmd.SetContext(context.WithValue(parent, cmdContextKey{}, c))
}

// GetCmdContext returns the CommandContext attached to cmd, or nil.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(cmdContextKey{}).(*CommandContext); ok {
			return c
		}
	}
	return nil
}
