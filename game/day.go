package game

import (
	"context"
	"fmt"
	"log"
	"strings"

	"werewolf/interpret"
	"werewolf/prompts"
	"werewolf/transcript"
)

// dayPhase announces the night's outcome, handles last words for
// first-night deaths, and runs one ordered round of free discussion.
func (e *Engine) dayPhase(ctx context.Context) {
	e.state.Phase = PhaseDay

	morning := e.nightSummary()
	e.state.AppendHistory(morning)
	e.announce(transcript.KindDeath, morning)

	deaths := e.state.Night.Deaths
	if len(deaths) > 0 {
		withLastWords := e.state.Day == 1
		if !withLastWords {
			e.announce(transcript.KindAnnounce,
				"By the rules, players who die at night after the first night have no last words.")
		}
		for _, id := range deaths {
			e.handleDeath(ctx, e.state.Seat(id), withLastWords)
			if e.state.GameOver {
				return
			}
		}
	}
	if e.state.GameOver {
		return
	}

	opening := "Daylight. Free discussion begins."
	e.state.AppendHistory(opening)
	e.announce(transcript.KindAnnounce, opening)

	e.state.Discussion = nil
	speakers := e.state.AliveSeats()
	var order []string
	for _, seat := range speakers {
		order = append(order, seat.ID)
	}

	for i, seat := range speakers {
		if !seat.Alive {
			continue
		}
		// Fold this morning's deaths and today's prior speeches into
		// the seat's memory before it speaks.
		e.refreshSummary(ctx, seat)

		orderInfo := fmt.Sprintf("Speaking order: %s (you speak %d of %d).",
			strings.Join(order, " -> "), i+1, len(order))
		prompt := prompts.DaySpeech(seat.ID, string(seat.Role), e.state.Day,
			PrivateContext(seat, e.state), seat.Summary, morning,
			e.state.AliveIDs(), orderInfo, e.state.Discussion)

		reply, err := e.ask(ctx, seat, "day speech", prompt)
		if err != nil {
			log.Printf("[DAY] %s speech failed: %v", seat.ID, err)
			reply = "..."
		}
		speech := interpret.CleanSpeech(seat.ID, reply)
		if speech == "" {
			speech = "..."
		}

		line := fmt.Sprintf("%s says: %s", seat.ID, speech)
		e.state.Discussion = append(e.state.Discussion, line)
		e.state.AppendHistory(line)
		e.record(transcript.KindSpeech, seat.ID, speech)
		e.public.Publish(seat.ID, speech)
		log.Printf("[DAY] %s", line)
	}

	e.announce(transcript.KindAnnounce, "All players have spoken.")
}

// nightSummary renders the morning's public death report.
func (e *Engine) nightSummary() string {
	if len(e.state.Night.Deaths) == 0 {
		return "Last night was a peaceful night."
	}
	return fmt.Sprintf("Last night, %s %s eliminated.",
		strings.Join(e.state.Night.Deaths, ", "), plural(len(e.state.Night.Deaths), "was", "were"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
