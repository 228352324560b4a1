package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/azul/internal/config"
	"github.com/roach88/azul/internal/engine"
	"github.com/roach88/azul/internal/rng"
	"github.com/roach88/azul/internal/store"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	Config string
	Seed   uint64
	Label  string
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a game and start its first round",
		Long: `Create a game with a full bag and fill the factories for round one.

The table shape comes from a CUE file (--config, or AZUL_CONFIG); without
one, the default is five factories of four tiles and twenty tiles of each
colour. The seed fixes every draw of the game; a random one is chosen when
--seed is not given.

Examples:
  azul new
  azul new --seed 42 --label "friday"
  azul new --config ./three-players.cue --db ./games.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "CUE game configuration file")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "human readable game label")

	return cmd
}

func runNew(opts *NewOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := newFormatter(opts.RootOptions, cmd)

	cfg := config.Default()
	path := opts.Config
	if path == "" {
		path = opts.Env.GameConfig
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load game config", err)
		}
		cfg = loaded
	}

	seed := opts.Seed
	if !cmd.Flags().Changed("seed") {
		seed = rng.NewSeed()
	}

	ids := opts.IDs
	if ids == nil {
		ids = engine.UUIDv7Generator{}
	}
	id := ids.Generate()

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	rec := store.Game{ID: id, Label: opts.Label, Seed: seed, Config: cfg}
	if err := st.WriteGame(ctx, rec); err != nil {
		return WrapExitError(ExitCommandError, "failed to write game", err)
	}

	g := engine.New(id, cfg, seed, engine.WithRecorder(st))
	if _, err := g.StartRound(ctx); err != nil {
		return out.Refused("failed to start round", err)
	}

	slog.Info("game created", "game", id, "seed", seed, "factories", cfg.Factories)
	return out.Success(newGameView(g, opts.Label))
}
