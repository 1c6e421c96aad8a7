// Package game is the game-master orchestration engine: the phase
// state machine, night-action resolution, vote tally and elimination,
// last words and hunter retaliation, and the per-seat memory
// summarization checkpoints. All hidden and public state lives here
// and is mutated only by the engine; actors participate exclusively
// through decision queries and notifications.
package game

import (
	"fmt"

	"werewolf/actor"
)

// Role is a seat's fixed identity for the whole game.
type Role string

const (
	Werewolf Role = "werewolf"
	Seer     Role = "seer"
	Witch    Role = "witch"
	Hunter   Role = "hunter"
	Villager Role = "villager"
)

// Good reports whether the role belongs to the village faction.
func (r Role) Good() bool { return r != Werewolf }

// ParseRole validates a role id from setup.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case Werewolf, Seer, Witch, Hunter, Villager:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Cause records why a seat died.
type Cause string

const (
	CauseWerewolf Cause = "werewolf"
	CausePoison   Cause = "poison"
	CauseVote     Cause = "vote"
	CauseGunshot  Cause = "gunshot"
)

// Winner identifies the side that won.
type Winner string

const (
	WinnerGood     Winner = "good"
	WinnerWerewolf Winner = "werewolf"
)

// Phase is the controller's current state.
type Phase string

const (
	PhaseInit  Phase = "init"
	PhaseNight Phase = "night"
	PhaseDay   Phase = "day"
	PhaseVote  Phase = "vote"
	PhaseEnd   Phase = "end"
)

// Seat is one participant slot. Role and the actor handle are fixed
// at setup; status only ever moves from alive to dead; Summary is the
// seat's private memory recap, replaced wholesale on each refresh.
type Seat struct {
	ID    string
	Role  Role
	Alive bool
	Actor actor.Actor

	// Summary is the compressed private memory; cursor marks how far
	// into the public history it has already folded.
	Summary string
	cursor  int

	// Inspections is the seer's private query record; unused for
	// other roles.
	Inspections []string
}

// Potions tracks the witch's one-shot abilities. Fields only ever go
// from true to false.
type Potions struct {
	Save   bool
	Poison bool
}

// NightInfo accumulates one night's pending effects and is reset at
// every night's start.
type NightInfo struct {
	KillTarget   string
	PoisonTarget string
	Saved        bool
	Deaths       []string
	DeathCause   map[string]Cause
}

// State is the shared record every phase reads and mutates.
type State struct {
	Seats    []*Seat
	Day      int
	Phase    Phase
	GameOver bool
	Winner   Winner
	Night    NightInfo
	Potions  Potions

	// Discussion holds today's public speeches only; cleared daily.
	Discussion []string
	// History is the append-only transcript of every publicly
	// attributable event; never rewritten, never holding
	// ability-private results.
	History []string
	// KillLog is the werewolves' private record of kill decisions.
	KillLog []string
}

// NewState builds the initial state for a fixed seat list.
func NewState(seats []*Seat) *State {
	return &State{
		Seats:   seats,
		Phase:   PhaseInit,
		Potions: Potions{Save: true, Poison: true},
		Night:   NightInfo{DeathCause: map[string]Cause{}},
	}
}

// Seat looks a seat up by id.
func (s *State) Seat(id string) *Seat {
	for _, seat := range s.Seats {
		if seat.ID == id {
			return seat
		}
	}
	return nil
}

// AliveSeats returns living seats, optionally filtered by role, in
// seat order.
func (s *State) AliveSeats(roles ...Role) []*Seat {
	var out []*Seat
	for _, seat := range s.Seats {
		if !seat.Alive {
			continue
		}
		if len(roles) == 0 {
			out = append(out, seat)
			continue
		}
		for _, r := range roles {
			if seat.Role == r {
				out = append(out, seat)
				break
			}
		}
	}
	return out
}

// AliveIDs returns the ids of living seats, skipping any listed in
// exclude.
func (s *State) AliveIDs(exclude ...string) []string {
	skip := map[string]bool{}
	for _, id := range exclude {
		skip[id] = true
	}
	var out []string
	for _, seat := range s.Seats {
		if seat.Alive && !skip[seat.ID] {
			out = append(out, seat.ID)
		}
	}
	return out
}

// MarkDead transitions a seat to dead with the given cause. Already
// dead seats are left untouched so no seat is eliminated twice.
func (s *State) MarkDead(id string, cause Cause) bool {
	seat := s.Seat(id)
	if seat == nil || !seat.Alive {
		return false
	}
	seat.Alive = false
	s.Night.DeathCause[id] = cause
	return true
}

// ResetNight clears the pending night effects at the top of a night.
func (s *State) ResetNight() {
	s.Night = NightInfo{DeathCause: map[string]Cause{}}
}

// CheckWin evaluates the win condition and freezes the game when one
// side has no living members. The winner, once set, never changes.
func (s *State) CheckWin() {
	if s.GameOver {
		return
	}
	wolves := len(s.AliveSeats(Werewolf))
	good := len(s.AliveSeats(Villager, Seer, Witch, Hunter))
	switch {
	case wolves == 0:
		s.GameOver = true
		s.Winner = WinnerGood
	case good == 0:
		s.GameOver = true
		s.Winner = WinnerWerewolf
	}
}

// AppendHistory adds a publicly-attributable event to the permanent
// record, tagged with the day and phase it happened in.
func (s *State) AppendHistory(text string) string {
	entry := fmt.Sprintf("[day %d/%s] %s", s.Day, s.Phase, text)
	s.History = append(s.History, entry)
	return entry
}
