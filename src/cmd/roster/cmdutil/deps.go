// Package cmdutil carries the state shared by the roster subcommands.
package cmdutil

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roster/src/internal/config"
	"roster/src/internal/gitutil"
	"roster/src/internal/logging"
	"roster/src/internal/prompt"
)

// Committer records rewritten files in version control.
type Committer interface {
	Commit(paths []string, message string) error
}

// Deps is filled in by the root command before a subcommand runs. Zero fields
// fall back to defaults, so tests can set only what they need.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Prompter  func(cmd *cobra.Command) prompt.Provider
	Committer func(push bool) Committer
}

// Cfg returns the loaded configuration or the defaults.
func (d *Deps) Cfg() *config.Config {
	if d == nil || d.Config == nil {
		return config.Default()
	}
	return d.Config
}

// Log returns the logger or a no-op logger.
func (d *Deps) Log() *zap.Logger {
	if d == nil {
		return logging.Nop()
	}
	return logging.OrNop(d.Logger)
}

// Prompt returns the provider used for options missing from the command line.
// By default it reads answers from the command's stdin.
func (d *Deps) Prompt(cmd *cobra.Command) prompt.Provider {
	if d != nil && d.Prompter != nil {
		return d.Prompter(cmd)
	}
	return prompt.NewReader(cmd.InOrStdin(), cmd.OutOrStdout())
}

// Commit returns the committer for rewritten roster files.
func (d *Deps) Commit(push bool) Committer {
	if d != nil && d.Committer != nil {
		return d.Committer(push)
	}
	return gitutil.NewCommitter(push)
}
