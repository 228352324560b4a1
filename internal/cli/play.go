package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/azul/internal/tile"
)

// PlayOptions holds flags for commands that change a game.
type PlayOptions struct {
	*RootOptions
	GameID string
}

// NewTakeCommand creates the take command.
func NewTakeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "take <source> <index>",
		Short: "Take every tile matching one tile of a factory or the center",
		Long: `Take from a factory (source 0..N-1) or the center (source N) every tile
with the same colour as the tile at index. Tiles left on a factory move to
the center.

Examples:
  azul take 0 2
  azul take 5 0 --game 0190b2d4-...`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := strconv.Atoi(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid source", err)
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid index", err)
			}
			return runTake(opts, source, index, cmd)
		},
	}
	gameFlag(cmd, &opts.GameID)

	return cmd
}

func runTake(opts *PlayOptions, source, index int, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	g, rec, err := loadGame(ctx, st, opts.GameID)
	if err != nil {
		return err
	}

	label := sourceLabel(g.Snapshot(), source)
	taken, err := g.Take(ctx, source, index)
	if err != nil {
		return out.Refused(fmt.Sprintf("cannot take from %s", label), err)
	}
	out.VerboseLog("took %s from %s", tile.Join(taken), label)

	view := newGameView(g, rec.Label)
	view.Taken = taken
	return out.Success(view)
}

// NewRoundCommand creates the round command.
func NewRoundCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "round",
		Short: "Refill the factories for the next round",
		Long: `Start the next round once every factory and the center are empty.

If the bag cannot fill every factory, the used pile is poured into it
first. Factories the bag still cannot fill are left short.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRound(opts, cmd)
		},
	}
	gameFlag(cmd, &opts.GameID)

	return cmd
}

func runRound(opts *PlayOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	g, rec, err := loadGame(ctx, st, opts.GameID)
	if err != nil {
		return err
	}

	if _, err := g.StartRound(ctx); err != nil {
		return out.Refused("cannot start round", err)
	}
	return out.Success(newGameView(g, rec.Label))
}

// NewDiscardCommand creates the discard command.
func NewDiscardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "discard <tiles>",
		Short: "Put tiles from player boards on the used pile",
		Long: `Put colour tiles back into circulation through the used pile.

Tiles are written with their symbols: R (red), B (blue), Y (yellow),
K (black), W (white).

Examples:
  azul discard R,R,B`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles, err := tile.ParseList(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid tiles", err)
			}
			return runDiscard(opts, tiles, cmd)
		},
	}
	gameFlag(cmd, &opts.GameID)

	return cmd
}

func runDiscard(opts *PlayOptions, tiles []tile.Tile, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	g, rec, err := loadGame(ctx, st, opts.GameID)
	if err != nil {
		return err
	}

	if err := g.Discard(ctx, tiles); err != nil {
		return out.Refused("cannot discard", err)
	}
	return out.Success(newGameView(g, rec.Label))
}
