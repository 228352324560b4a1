package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/azul/internal/store"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show",
		Short:         "Show the table of a game",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}
	gameFlag(cmd, &opts.GameID)

	return cmd
}

func runShow(opts *PlayOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	g, rec, err := loadGame(ctx, st, opts.GameID)
	if err != nil {
		return err
	}
	return newFormatter(opts.RootOptions, cmd).Success(newGameView(g, rec.Label))
}

// GameList is the output of the list command.
type GameList struct {
	Games []store.GameSummary `json:"games"`
}

func (l GameList) String() string {
	if len(l.Games) == 0 {
		return "No games found in database."
	}
	var b strings.Builder
	for i, g := range l.Games {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  rounds=%d events=%d factories=%d", g.ID, g.Rounds, g.Events, g.Config.Factories)
		if g.Label != "" {
			fmt.Fprintf(&b, "  %q", g.Label)
		}
	}
	return b.String()
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List games in the database, oldest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			games, err := st.ListGames(commandContext(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list games", err)
			}
			return newFormatter(rootOpts, cmd).Success(GameList{Games: games})
		},
	}
	return cmd
}
