package game

import (
	"context"
	"fmt"
	"log"

	"werewolf/interpret"
	"werewolf/prompts"
	"werewolf/transcript"
)

// handleDeath runs the post-elimination sequence for one dead seat:
// the last-words turn (unless suppressed by the night-death rule) and
// the hunter's retaliation shot. Retaliation is gated only on the
// death cause, not on whether last words were granted, so a hunter
// taken by the werewolves on a later night still fires.
func (e *Engine) handleDeath(ctx context.Context, seat *Seat, withLastWords bool) {
	if seat == nil {
		return
	}
	if withLastWords {
		e.lastWords(ctx, seat)
	}
	e.hunterShot(ctx, seat)
	e.state.CheckWin()
}

// lastWords grants one final public statement. Automated seats are
// time-bounded; a timeout or failure substitutes a placeholder so the
// game always proceeds.
func (e *Engine) lastWords(ctx context.Context, seat *Seat) {
	e.announce(transcript.KindAnnounce, fmt.Sprintf("%s has been eliminated. Their last words:", seat.ID))

	prompt := prompts.LastWords(seat.ID, string(seat.Role), e.state.Day,
		PrivateContext(seat, e.state), seat.Summary, e.state.Discussion)
	if !isAutomated(seat.Actor) {
		prompt = prompts.LastWordsHuman()
	}

	var reply string
	var err error
	if isAutomated(seat.Actor) {
		wordsCtx, cancel := context.WithTimeout(ctx, e.lastWordsTimeout)
		reply, err = e.ask(wordsCtx, seat, "last words", prompt)
		cancel()
	} else {
		reply, err = e.ask(ctx, seat, "last words", prompt)
	}
	if err != nil {
		log.Printf("[LAST WORDS] %s: %v", seat.ID, err)
		reply = "..."
	}

	words := interpret.CleanSpeech(seat.ID, reply)
	if words == "" {
		words = "..."
	}
	entry := e.state.AppendHistory(fmt.Sprintf("%s's last words: %s", seat.ID, words))
	e.record(transcript.KindLastWords, seat.ID, words)
	e.public.Publish(seat.ID, words)
	log.Printf("[LAST WORDS] %s", entry)
}

// hunterShot gives a dead hunter one retaliation shot unless poison
// took them. The victim recursively goes through the same death
// handling, so chained hunters keep firing; the chain is bounded
// because seats only ever die once.
func (e *Engine) hunterShot(ctx context.Context, seat *Seat) {
	if seat.Role != Hunter {
		return
	}
	cause, ok := e.state.Night.DeathCause[seat.ID]
	if !ok {
		cause = CauseVote
	}
	if cause == CausePoison {
		e.announce(transcript.KindAnnounce,
			fmt.Sprintf("Hunter %s was poisoned and cannot fire.", seat.ID))
		return
	}

	targets := e.state.AliveIDs()
	if len(targets) == 0 {
		return
	}
	e.announce(transcript.KindAnnounce, fmt.Sprintf("Hunter %s raises their gun!", seat.ID))

	prompt := prompts.HunterShot(seat.ID, seat.Summary, e.state.Discussion, targets)
	if !isAutomated(seat.Actor) {
		prompt = prompts.HunterShotHuman(targets)
	}

	target := ""
	for attempt := 1; attempt <= targetAttempts && target == ""; attempt++ {
		var reply string
		var err error
		if isAutomated(seat.Actor) {
			shotCtx, cancel := context.WithTimeout(ctx, e.lastWordsTimeout)
			reply, err = e.ask(shotCtx, seat, fmt.Sprintf("hunter shot (attempt %d)", attempt), prompt)
			cancel()
		} else {
			reply, err = e.ask(ctx, seat, fmt.Sprintf("hunter shot (attempt %d)", attempt), prompt)
		}
		if err != nil {
			log.Printf("[HUNTER] %s shot query failed: %v", seat.ID, err)
			continue
		}
		resolved, outcome := interpret.Resolve(reply, targets)
		switch outcome {
		case interpret.Abstain:
			e.announce(transcript.KindAnnounce, fmt.Sprintf("Hunter %s holds their fire.", seat.ID))
			return
		case interpret.Match:
			target = resolved
		}
	}

	random := false
	if target == "" {
		target = targets[e.rng.Intn(len(targets))]
		random = true
	}

	e.state.MarkDead(target, CauseGunshot)
	text := fmt.Sprintf("Hunter %s shot %s.", seat.ID, target)
	if random {
		text = fmt.Sprintf("Hunter %s gave no valid target; the moderator's random shot hit %s.", seat.ID, target)
	}
	entry := e.state.AppendHistory(text)
	e.record(transcript.KindShot, seat.ID, entry)
	e.announce(transcript.KindDeath, text)

	// A victim of a hunter who died at night after the first night
	// gets no last words; the chain itself continues regardless.
	victimLastWords := true
	if e.state.Day >= 2 && (cause == CauseWerewolf || cause == CausePoison) {
		victimLastWords = false
		e.announce(transcript.KindAnnounce,
			fmt.Sprintf("By the rules, %s has no last words.", target))
	}
	e.handleDeath(ctx, e.state.Seat(target), victimLastWords)
}
