package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func newSummaryEngine(t *testing.T, summarizer *scriptedActor) *Engine {
	t.Helper()
	e, err := New(Config{
		Seats:      fourSeats(),
		Summarizer: summarizer,
		Rand:       rand.New(rand.NewSource(1)),
		GameID:     "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestRefreshSummaryNoNewEvents(t *testing.T) {
	summarizer := script("summarizer", "unused recap")
	e := newSummaryEngine(t, summarizer)
	seat := e.state.Seat("s0")

	e.refreshSummary(context.Background(), seat)

	if summarizer.calls() != 0 {
		t.Errorf("summarizer called %d times with an empty history, want 0", summarizer.calls())
	}
	if seat.Summary != "" {
		t.Errorf("Summary = %q, want empty", seat.Summary)
	}
}

func TestRefreshSummaryFoldsAndAdvances(t *testing.T) {
	summarizer := script("summarizer", "day one recap", "day two recap")
	e := newSummaryEngine(t, summarizer)
	seat := e.state.Seat("s0")

	e.state.AppendHistory("s2 says: good morning")
	e.state.AppendHistory("s3 says: I agree")
	e.refreshSummary(context.Background(), seat)
	if seat.Summary != "day one recap" {
		t.Fatalf("Summary = %q, want the first fold", seat.Summary)
	}

	// A second refresh over the same window is a no-op.
	e.refreshSummary(context.Background(), seat)
	if summarizer.calls() != 1 {
		t.Fatalf("summarizer called %d times with no new events, want 1", summarizer.calls())
	}

	e.state.AppendHistory("s1 was voted out")
	e.refreshSummary(context.Background(), seat)
	if seat.Summary != "day two recap" {
		t.Errorf("Summary = %q, want the second fold", seat.Summary)
	}
	if summarizer.calls() != 2 {
		t.Errorf("summarizer called %d times, want 2", summarizer.calls())
	}
}

func TestRefreshSummaryFailureKeepsPrevious(t *testing.T) {
	summarizer := &scriptedActor{
		name: "summarizer",
		steps: []step{
			{reply: "first recap"},
			{err: errors.New("provider unavailable")},
			{reply: "second recap"},
		},
		fallback: "",
	}
	e := newSummaryEngine(t, summarizer)
	seat := e.state.Seat("s0")

	e.state.AppendHistory("s2 says: good morning")
	e.refreshSummary(context.Background(), seat)
	if seat.Summary != "first recap" {
		t.Fatalf("Summary = %q, want the first fold", seat.Summary)
	}

	e.state.AppendHistory("s1 was voted out")
	e.refreshSummary(context.Background(), seat)
	if seat.Summary != "first recap" {
		t.Fatalf("Summary = %q after a failed fold, want the previous one kept", seat.Summary)
	}

	// The cursor did not advance, so the retry covers the same window
	// and succeeds.
	e.refreshSummary(context.Background(), seat)
	if seat.Summary != "second recap" {
		t.Errorf("Summary = %q, want the retried fold", seat.Summary)
	}
}

func TestRefreshSummaryCursorsArePerSeat(t *testing.T) {
	summarizer := script("summarizer", "recap for s0", "recap for s2")
	e := newSummaryEngine(t, summarizer)

	e.state.AppendHistory("s3 says: hello")
	s0 := e.state.Seat("s0")
	s2 := e.state.Seat("s2")

	e.refreshSummary(context.Background(), s0)
	e.refreshSummary(context.Background(), s2)

	if s0.Summary != "recap for s0" || s2.Summary != "recap for s2" {
		t.Errorf("summaries = (%q, %q), want independent per-seat folds", s0.Summary, s2.Summary)
	}
	if summarizer.calls() != 2 {
		t.Errorf("summarizer called %d times, want once per seat", summarizer.calls())
	}
}

func TestRefreshSummaryWithoutSummarizer(t *testing.T) {
	e := newTestEngine(t, fourSeats())
	seat := e.state.Seat("s0")
	e.state.AppendHistory("event")

	e.refreshSummary(context.Background(), seat)

	if seat.Summary != "" {
		t.Errorf("Summary = %q with no summarizer configured, want empty", seat.Summary)
	}
}
