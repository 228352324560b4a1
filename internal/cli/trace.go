package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/azul/internal/event"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	GameID string
	Kind   string // optional - filter to one event kind
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	GameID string        `json:"game_id"`
	Events []event.Event `json:"events"`
	Stats  TraceStats    `json:"stats"`
}

// TraceStats holds summary statistics for the journal.
type TraceStats struct {
	TotalEvents int `json:"total_events"`
	Rounds      int `json:"rounds"`
	Takes       int `json:"takes"`
	Discards    int `json:"discards"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the journal of a game",
		Long: `Show every journaled operation of a game in seq order.

With --verbose each event is followed by the table it produced.

Examples:
  azul trace
  azul trace --game 0190b2d4-... --kind take
  azul trace --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}
	gameFlag(cmd, &opts.GameID)
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "filter to one event kind (start_round|take|discard)")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := newFormatter(opts.RootOptions, cmd)

	if opts.Kind != "" && !event.Kind(opts.Kind).Valid() {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid kind %q", opts.Kind))
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := resolveGameID(ctx, st, opts.GameID)
	if err != nil {
		return err
	}
	if _, err := st.ReadGame(ctx, id); err != nil {
		return WrapExitError(ExitCommandError, "unknown game", err)
	}

	events, err := st.ReadEvents(ctx, id)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	result := TraceResult{GameID: id, Events: []event.Event{}}
	for _, e := range events {
		switch e.Kind {
		case event.KindStartRound:
			result.Stats.Rounds++
		case event.KindTake:
			result.Stats.Takes++
		case event.KindDiscard:
			result.Stats.Discards++
		}
		if opts.Kind != "" && string(e.Kind) != opts.Kind {
			continue
		}
		result.Events = append(result.Events, e)
	}
	result.Stats.TotalEvents = len(events)

	if opts.Format == "json" {
		return out.Success(result)
	}
	return outputTraceText(cmd, result, opts.Verbose)
}

// outputTraceText outputs the trace as text.
func outputTraceText(cmd *cobra.Command, result TraceResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Game: %s\n\n", result.GameID)
	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, e := range result.Events {
		fmt.Fprintln(w, e.String())
		if verbose {
			fmt.Fprintf(w, "    %s\n", e.Snapshot)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Stats: %d events, %d rounds, %d takes, %d discards\n",
		result.Stats.TotalEvents, result.Stats.Rounds, result.Stats.Takes, result.Stats.Discards)
	return nil
}
