package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"werewolf/interpret"
	"werewolf/prompts"
	"werewolf/transcript"
)

// ballot is one seat's vote; an empty target is an abstention.
type ballot struct {
	voter  string
	target string
}

// votePhase collects one vote per living seat, tallies, and resolves
// the elimination. Automated seats are queried serially under a
// per-seat timeout so a stalled provider never stalls the game and a
// burst of parallel calls never trips a rate limit; human seats vote
// afterward with no timeout.
func (e *Engine) votePhase(ctx context.Context) {
	e.state.Phase = PhaseVote
	e.announce(transcript.KindAnnounce,
		"Voting begins. Vote for the player you believe is a werewolf, or say 'abstain'.")

	voters := e.state.AliveSeats()
	targets := e.state.AliveIDs()

	var automated, humans []*Seat
	for _, seat := range voters {
		if isAutomated(seat.Actor) {
			automated = append(automated, seat)
		} else {
			humans = append(humans, seat)
		}
	}

	var votes []ballot
	for _, seat := range automated {
		voteCtx, cancel := context.WithTimeout(ctx, e.voteTimeout)
		target, err := e.collectVote(voteCtx, seat, targets)
		cancel()
		if err != nil {
			log.Printf("[VOTE] %s vote failed, counted as abstention: %v", seat.ID, err)
			target = ""
		}
		votes = append(votes, ballot{voter: seat.ID, target: target})
	}
	for _, seat := range humans {
		target, err := e.collectVote(ctx, seat, targets)
		if err != nil {
			log.Printf("[VOTE] %s vote failed, counted as abstention: %v", seat.ID, err)
			target = ""
		}
		votes = append(votes, ballot{voter: seat.ID, target: target})
	}

	e.resolveVotes(ctx, votes)

	e.state.CheckWin()
	if e.state.GameOver {
		return
	}
	// Refresh every living seat's memory with the day's complete
	// public record before the next night begins.
	for _, seat := range e.state.AliveSeats() {
		e.refreshSummary(ctx, seat)
	}
}

// collectVote asks one seat for its vote. An unresolved answer after
// the attempt ceiling is an abstention, never an error.
func (e *Engine) collectVote(ctx context.Context, seat *Seat, targets []string) (string, error) {
	prompt := prompts.Vote(seat.ID, string(seat.Role), e.state.Day,
		PrivateContext(seat, e.state), seat.Summary, e.state.Discussion, targets)
	if !isAutomated(seat.Actor) {
		prompt = prompts.VoteHuman(targets)
	}

	for attempt := 1; attempt <= 2; attempt++ {
		reply, err := e.ask(ctx, seat, fmt.Sprintf("vote (attempt %d)", attempt), prompt)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", err
			}
			log.Printf("[VOTE] %s query failed on attempt %d: %v", seat.ID, attempt, err)
			continue
		}
		resolved, outcome := interpret.Resolve(reply, targets)
		switch outcome {
		case interpret.Abstain:
			return "", nil
		case interpret.Match:
			return resolved, nil
		}
		if !isAutomated(seat.Actor) {
			seat.Actor.Notify("Invalid input; vote for a listed player or say 'abstain'.", true)
		}
	}
	return "", nil
}

// resolveVotes publishes the ballots, tallies non-abstaining votes,
// and applies the elimination rules: empty tally and ties eliminate
// nobody; a sole maximum is voted out with last words and any hunter
// chain.
func (e *Engine) resolveVotes(ctx context.Context, votes []ballot) {
	var details []string
	for _, v := range votes {
		if v.target == "" {
			details = append(details, v.voter+" abstained")
		} else {
			details = append(details, fmt.Sprintf("%s voted for %s", v.voter, v.target))
		}
	}
	e.announce(transcript.KindVote, "Votes: "+strings.Join(details, "; ")+".")

	tally := map[string]int{}
	for _, v := range votes {
		if v.target != "" {
			tally[v.target]++
		}
	}
	if len(tally) == 0 {
		entry := e.state.AppendHistory("Nobody voted; no one is eliminated this round.")
		e.announce(transcript.KindVote, entry)
		return
	}

	maxVotes := 0
	for _, n := range tally {
		if n > maxVotes {
			maxVotes = n
		}
	}
	var leaders []string
	for id, n := range tally {
		if n == maxVotes {
			leaders = append(leaders, id)
		}
	}
	sort.Strings(leaders)

	if len(leaders) > 1 {
		entry := e.state.AppendHistory(fmt.Sprintf(
			"The vote tied between %s; no one is eliminated this round.", strings.Join(leaders, ", ")))
		e.announce(transcript.KindVote, entry)
		return
	}

	eliminated := leaders[0]
	e.state.MarkDead(eliminated, CauseVote)
	entry := e.state.AppendHistory(fmt.Sprintf("%s was voted out (%s).", eliminated, strings.Join(details, ", ")))
	e.announce(transcript.KindDeath, entry)

	e.handleDeath(ctx, e.state.Seat(eliminated), true)
}
