package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"werewolf/actor"
	"werewolf/broadcast"
	"werewolf/transcript"
)

// Config wires an Engine. Seats must already carry their role and
// actor bindings; the setup contract is validated in New and any
// violation aborts before the first phase.
type Config struct {
	Seats      []*Seat
	Summarizer actor.Actor
	Sink       transcript.Sink
	Rand       *rand.Rand
	GameID     string

	// VoteTimeout bounds each automated vote query; LastWordsTimeout
	// bounds each automated final statement. Zero means the default.
	VoteTimeout      time.Duration
	LastWordsTimeout time.Duration
}

const defaultQueryTimeout = 30 * time.Second

// Engine drives one game from Init to End. It owns the state
// exclusively; actors influence it only by answering queries.
type Engine struct {
	state      *State
	public     *broadcast.Channel
	wolves     *broadcast.Channel
	summarizer actor.Actor
	sink       transcript.Sink
	rng        *rand.Rand
	gameID     string

	voteTimeout      time.Duration
	lastWordsTimeout time.Duration
}

// New validates the setup contract and builds the engine and its
// broadcast channels.
func New(cfg Config) (*Engine, error) {
	if len(cfg.Seats) == 0 {
		return nil, fmt.Errorf("engine: no seats configured")
	}
	seen := map[string]bool{}
	for _, seat := range cfg.Seats {
		if seat.ID == "" {
			return nil, fmt.Errorf("engine: seat with empty id")
		}
		if seen[seat.ID] {
			return nil, fmt.Errorf("engine: duplicate seat id %q", seat.ID)
		}
		seen[seat.ID] = true
		if _, err := ParseRole(string(seat.Role)); err != nil {
			return nil, fmt.Errorf("engine: seat %s: %w", seat.ID, err)
		}
		if seat.Actor == nil {
			return nil, fmt.Errorf("engine: seat %s has no actor", seat.ID)
		}
		seat.Alive = true
	}

	seats := make([]*Seat, len(cfg.Seats))
	copy(seats, cfg.Seats)
	sort.Slice(seats, func(i, j int) bool { return seats[i].ID < seats[j].ID })

	var everyone, pack []actor.Actor
	for _, seat := range seats {
		everyone = append(everyone, seat.Actor)
		if seat.Role == Werewolf {
			pack = append(pack, seat.Actor)
		}
	}

	sink := cfg.Sink
	if sink == nil {
		sink = transcript.Discard{}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	voteTimeout := cfg.VoteTimeout
	if voteTimeout == 0 {
		voteTimeout = defaultQueryTimeout
	}
	lastWordsTimeout := cfg.LastWordsTimeout
	if lastWordsTimeout == 0 {
		lastWordsTimeout = defaultQueryTimeout
	}

	return &Engine{
		state:            NewState(seats),
		public:           broadcast.New("public", false, everyone...),
		wolves:           broadcast.New("werewolves", true, pack...),
		summarizer:       cfg.Summarizer,
		sink:             sink,
		rng:              rng,
		gameID:           cfg.GameID,
		voteTimeout:      voteTimeout,
		lastWordsTimeout: lastWordsTimeout,
	}, nil
}

// State exposes the game record, mainly for tests and for the final
// report in main.
func (e *Engine) State() *State { return e.state }

// Run drives the full day/night loop until a side wins.
func (e *Engine) Run(ctx context.Context) error {
	e.announceSetup()

	for !e.state.GameOver {
		e.state.Day++
		e.state.ResetNight()
		log.Printf("[GAME] ===== day %d =====", e.state.Day)

		e.nightPhase(ctx)
		if e.state.GameOver {
			break
		}
		e.dayPhase(ctx)
		if e.state.GameOver {
			break
		}
		e.votePhase(ctx)
	}

	e.finish()
	return ctx.Err()
}

// announceSetup publishes the game composition once and privately
// tells each werewolf who its packmates are.
func (e *Engine) announceSetup() {
	counts := map[Role]int{}
	for _, seat := range e.state.Seats {
		counts[seat.Role]++
	}
	var parts []string
	for _, role := range []Role{Werewolf, Seer, Witch, Hunter, Villager} {
		if counts[role] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[role], role))
		}
	}
	e.announce(transcript.KindAnnounce,
		fmt.Sprintf("The game begins with %d players: %s.", len(e.state.Seats), strings.Join(parts, ", ")))

	for _, wolf := range e.state.AliveSeats(Werewolf) {
		mates := livingPackmates(wolf, e.state)
		msg := "You are a werewolf and the only one in the game."
		if len(mates) > 0 {
			msg = "You are a werewolf. Your packmates: " + strings.Join(mates, ", ") + "."
		}
		broadcast.Whisper(wolf.Actor, msg)
	}
}

// finish announces the winner and reveals every role assignment.
func (e *Engine) finish() {
	e.state.Phase = PhaseEnd
	e.announce(transcript.KindAnnounce, fmt.Sprintf("The game is over. Winner: %s.", e.state.Winner))
	var reveal []string
	for _, seat := range e.state.Seats {
		reveal = append(reveal, fmt.Sprintf("%s was the %s", seat.ID, seat.Role))
	}
	e.announce(transcript.KindAnnounce, "Final roles: "+strings.Join(reveal, "; ")+".")
}

// announce publishes to the public channel, the console log and the
// transcript sink. It does not touch History; callers decide what is
// part of the permanent public record.
func (e *Engine) announce(kind transcript.Kind, text string) {
	log.Printf("[GM] %s", text)
	e.public.Publish("game_master", text)
	e.record(kind, "", text)
}

// record writes one transcript event; sink failures are the sink's
// problem, never the game's.
func (e *Engine) record(kind transcript.Kind, seat, text string) {
	e.sink.Record(transcript.Event{
		GameID: e.gameID,
		Day:    e.state.Day,
		Phase:  string(e.state.Phase),
		Kind:   kind,
		Seat:   seat,
		Text:   text,
		At:     time.Now(),
	})
}

// recordQuery audits a decision query issued to a seat.
func (e *Engine) recordQuery(seat, title string) {
	e.record(transcript.KindQuery, seat, title)
}

// ask audits and issues one resilient decision query.
func (e *Engine) ask(ctx context.Context, seat *Seat, title, prompt string) (string, error) {
	e.recordQuery(seat.ID, title)
	return actor.Ask(ctx, seat.Actor, prompt)
}

// isAutomated reports whether a seat's actor is decision-service
// backed (and therefore timeout-bounded and retried).
func isAutomated(a actor.Actor) bool {
	_, ok := a.(actor.Automated)
	return ok
}
