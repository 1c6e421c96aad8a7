// Package actor binds decision-making entities to game seats. An
// actor is either automated (backed by a Gemini decision service) or
// human (console input). The engine only ever talks to the Actor
// interface; actors never touch game state directly.
package actor

import "context"

// Actor is one decision-making entity bound to a seat.
type Actor interface {
	// Name returns the stable identifier the actor is addressed by.
	Name() string
	// Decide issues one prompt and returns the actor's free-text
	// answer. Automated actors may fail transiently; callers go
	// through Ask for retry and fallback handling.
	Decide(ctx context.Context, prompt string) (string, error)
	// Notify delivers a one-way message. private marks information
	// that must not be visible to other seats.
	Notify(text string, private bool)
}

// Automated marks actors backed by a decision service. Rebind swaps
// the underlying service binding to an alternate configured instance
// and reports whether a swap happened; game identity is unaffected.
type Automated interface {
	Rebind() bool
	Model() string
}
