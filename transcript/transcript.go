// Package transcript is the append-only audit sink. Every
// publicly-attributable game event and every decision query the
// engine issues is recorded for offline review. Recording is
// best-effort: a failing sink logs and never stalls the game.
package transcript

import "time"

// Kind classifies a transcript event.
type Kind string

const (
	KindAnnounce  Kind = "announce"
	KindSpeech    Kind = "speech"
	KindVote      Kind = "vote"
	KindDeath     Kind = "death"
	KindLastWords Kind = "last_words"
	KindShot      Kind = "shot"
	KindQuery     Kind = "query"
	KindSystem    Kind = "system"
)

// Event is one transcript record.
type Event struct {
	GameID string    `bson:"game_id"`
	Day    int       `bson:"day"`
	Phase  string    `bson:"phase"`
	Kind   Kind      `bson:"kind"`
	Seat   string    `bson:"seat,omitempty"`
	Text   string    `bson:"text"`
	At     time.Time `bson:"at"`
}

// Sink receives transcript events.
type Sink interface {
	Record(ev Event)
	Close() error
}

// Multi fans events out to several sinks.
type Multi []Sink

func (m Multi) Record(ev Event) {
	for _, s := range m {
		s.Record(ev)
	}
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Discard drops every event; used when no sink is configured.
type Discard struct{}

func (Discard) Record(Event) {}
func (Discard) Close() error { return nil }
