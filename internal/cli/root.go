package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/azul/internal/config"
	"github.com/roach88/azul/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string

	// Env is the process environment the defaults came from.
	Env config.Env

	// IDs overrides the game id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs engine.IDGenerator

	envErr error
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the azul CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	opts.Env, opts.envErr = config.LoadEnv()
	if opts.envErr != nil {
		opts.Env = config.Env{Database: "azul.db", LogLevel: "info"}
	}
	return newRootCommand(opts)
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "azul",
		Short: "Tile table for a tile-drafting game",
		Long: `Run the shared table of a tile-drafting game: factories, the center,
the bag and the used pile.

Every accepted operation is journaled to a SQLite database with a hash of
the table it produced, so any game can be replayed and verified.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.envErr != nil {
				return WrapExitError(ExitCommandError, "invalid environment", opts.envErr)
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return setupLogging(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", opts.Env.Database, "path to SQLite database (env AZUL_DB)")

	// Add subcommands
	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewTakeCommand(opts))
	cmd.AddCommand(NewRoundCommand(opts))
	cmd.AddCommand(NewDiscardCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setupLogging installs the default slog logger on the command's stderr.
// --verbose forces debug; otherwise AZUL_LOG_LEVEL applies.
func setupLogging(opts *RootOptions, cmd *cobra.Command) error {
	level, err := opts.Env.Level()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid environment", err)
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
