package game

import (
	"context"
	"log"

	"werewolf/actor"
	"werewolf/prompts"
	"werewolf/transcript"
)

// refreshSummary folds the public events the seat has not yet seen
// into its private memory summary through one summarization query.
// The per-seat cursor only advances on success, so a failed call
// retries the same window at the next checkpoint and a window with no
// new events returns the previous summary untouched. Summarization is
// never fatal: on any failure the previous summary stands and the
// game continues.
func (e *Engine) refreshSummary(ctx context.Context, seat *Seat) {
	if e.summarizer == nil {
		return
	}
	window := len(e.state.History)
	if seat.cursor >= window {
		return
	}
	events := e.state.History[seat.cursor:window]

	prompt := prompts.SummaryFold(seat.Summary, events)
	e.record(transcript.KindQuery, seat.ID, "memory summary refresh")

	updated, err := actor.Ask(ctx, e.summarizer, prompt)
	if err != nil || updated == "" {
		log.Printf("[MEMORY] summary refresh for %s failed, keeping previous: %v", seat.ID, err)
		return
	}

	seat.Summary = updated
	seat.cursor = window
}
