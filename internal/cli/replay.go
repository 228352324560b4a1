package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/azul/internal/engine"
	"github.com/roach88/azul/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	GameID string // optional - specific game only
}

// ReplayGameResult holds the replay result for a single game.
type ReplayGameResult struct {
	GameID   string `json:"game_id"`
	Events   int    `json:"events"`
	Rounds   int    `json:"rounds"`
	Final    string `json:"final,omitempty"`
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Games       []ReplayGameResult `json:"games"`
	TotalGames  int                `json:"total_games"`
	AllVerified bool               `json:"all_verified"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay journals and verify every recorded table",
		Long: `Rebuild games from their seed and journal and verify them.

Every event's stored snapshot must match its stored hash, and replaying
the events from the game's seed must reproduce every snapshot exactly.

Exit codes:
  0 - All games verified
  1 - A journal is corrupt or diverged on replay
  2 - Command error (database not found, etc.)

Examples:
  azul replay
  azul replay --game 0190b2d4-...
  azul replay --db ./games.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}
	gameFlag(cmd, &opts.GameID)

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	var ids []string
	if opts.GameID != "" {
		ids = []string{opts.GameID}
	} else {
		games, err := st.ListGames(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list games", err)
		}
		for _, g := range games {
			ids = append(ids, g.ID)
		}
	}

	result := ReplayResult{
		Games:       make([]ReplayGameResult, 0, len(ids)),
		TotalGames:  len(ids),
		AllVerified: true,
	}
	for _, id := range ids {
		gameResult, err := replayGame(ctx, st, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay game %s", id), err)
		}
		result.Games = append(result.Games, gameResult)
		if !gameResult.Verified {
			result.AllVerified = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// replayGame verifies one game. Storage errors are returned; a journal that
// fails verification is reported in the result.
func replayGame(ctx context.Context, st *store.Store, id string) (ReplayGameResult, error) {
	rec, err := st.ReadGame(ctx, id)
	if err != nil {
		return ReplayGameResult{}, err
	}
	events, err := st.ReadEvents(ctx, id)
	if err != nil {
		return ReplayGameResult{}, err
	}

	res := ReplayGameResult{GameID: id, Events: len(events)}
	for _, e := range events {
		if err := e.Verify(); err != nil {
			res.Error = err.Error()
			return res, nil
		}
	}

	g, err := engine.Replay(ctx, rec.ID, rec.Config, rec.Seed, events)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}

	res.Rounds = g.Rounds()
	res.Final = g.Snapshot().Describe()
	res.Verified = true
	return res, nil
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllVerified {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    string(engine.ErrCodeReplayMismatch),
			Message: "replay verification failed",
		}
	}

	out := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
	if err := out.Respond(response); err != nil {
		return err
	}

	if !result.AllVerified {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if result.TotalGames == 0 {
		fmt.Fprintln(w, "No games found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d game(s)\n", result.TotalGames)
	fmt.Fprintln(w)

	for _, game := range result.Games {
		status := "✓"
		if !game.Verified {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Game: %s\n", status, game.GameID)
		fmt.Fprintf(w, "  Events: %d, rounds: %d\n", game.Events, game.Rounds)
		if verbose && game.Final != "" {
			fmt.Fprintf(w, "  Final: %s\n", game.Final)
		}
		if game.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", game.Error)
		}
		fmt.Fprintln(w)
	}

	if result.AllVerified {
		fmt.Fprintln(w, "✓ All games verified")
		return nil
	}

	fmt.Fprintln(w, "✗ Replay verification failed")
	return NewExitError(ExitFailure, "replay verification failed")
}
