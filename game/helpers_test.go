package game

import (
	"context"
	"math/rand"
	"testing"
)

// scriptedActor replays a fixed queue of replies (or errors) and
// records every notification, standing in for the decision service.
type scriptedActor struct {
	name     string
	steps    []step
	next     int
	notices  []string
	rebinds  int
	fallback string
}

type step struct {
	reply string
	err   error
}

func script(name string, replies ...string) *scriptedActor {
	a := &scriptedActor{name: name, fallback: "abstain"}
	for _, r := range replies {
		a.steps = append(a.steps, step{reply: r})
	}
	return a
}

func (a *scriptedActor) Name() string { return a.name }

func (a *scriptedActor) Decide(ctx context.Context, prompt string) (string, error) {
	i := a.next
	a.next++
	if i >= len(a.steps) {
		return a.fallback, nil
	}
	return a.steps[i].reply, a.steps[i].err
}

func (a *scriptedActor) Notify(text string, private bool) {
	a.notices = append(a.notices, text)
}

func (a *scriptedActor) Rebind() bool {
	a.rebinds++
	return false
}

func (a *scriptedActor) Model() string { return "scripted" }

// calls reports how many decision queries the actor answered.
func (a *scriptedActor) calls() int { return a.next }

func newTestEngine(t *testing.T, seats []*Seat) *Engine {
	t.Helper()
	e, err := New(Config{
		Seats:  seats,
		Rand:   rand.New(rand.NewSource(1)),
		GameID: "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func seatWith(id string, role Role, a *scriptedActor) *Seat {
	return &Seat{ID: id, Role: role, Actor: a}
}
