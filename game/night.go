package game

import (
	"context"
	"fmt"
	"log"
	"strings"

	"werewolf/broadcast"
	"werewolf/interpret"
	"werewolf/prompts"
	"werewolf/transcript"
)

// targetAttempts bounds how often an ability consult is re-asked
// before its fallback applies.
const targetAttempts = 3

// nightPhase runs the fixed ability order: werewolves, seer, witch,
// then the pure settlement that applies the accumulated effects.
func (e *Engine) nightPhase(ctx context.Context) {
	e.state.Phase = PhaseNight
	e.announce(transcript.KindAnnounce, "Night falls. Everyone close your eyes.")

	e.werewolfAction(ctx)
	if len(e.state.AliveSeats(Seer)) > 0 {
		e.seerAction(ctx)
	}
	if len(e.state.AliveSeats(Witch)) > 0 {
		e.witchAction(ctx)
	}

	e.settleNight()
}

// werewolfAction runs the pack discussion and the final kill
// decision. The decision itself stays private until morning; only the
// random fallback is a public-audit event.
func (e *Engine) werewolfAction(ctx context.Context) {
	wolves := e.state.AliveSeats(Werewolf)
	if len(wolves) == 0 {
		return
	}
	var targets []string
	for _, seat := range e.state.Seats {
		if seat.Alive && seat.Role != Werewolf {
			targets = append(targets, seat.ID)
		}
	}
	if len(targets) == 0 {
		return
	}

	e.announce(transcript.KindAnnounce, "Werewolves, open your eyes and choose a victim.")

	discussion := e.werewolfDiscussion(ctx, wolves, targets)

	// The first living werewolf by seat order speaks for the pack.
	leader := wolves[0]
	prompt := prompts.KillDecision(leader.ID, e.state.Day, packmatesInfo(leader, e.state),
		leader.Summary, discussion, targets)
	if !isAutomated(leader.Actor) {
		prompt = prompts.KillDecisionHuman(targets)
	}

	target := ""
	for attempt := 1; attempt <= targetAttempts && target == ""; attempt++ {
		reply, err := e.ask(ctx, leader, fmt.Sprintf("werewolf kill decision (attempt %d)", attempt), prompt)
		if err != nil {
			log.Printf("[NIGHT] %s kill decision failed: %v", leader.ID, err)
			continue
		}
		if resolved, outcome := interpret.Resolve(reply, targets); outcome == interpret.Match {
			target = resolved
		} else {
			leader.Actor.Notify("Invalid target. Answer strictly in the required format with a player from the list.", true)
		}
	}

	if target == "" {
		target = targets[e.rng.Intn(len(targets))]
		// The fallback is the moderator's own act, so it goes on the
		// public record unlike the pack's private decision.
		entry := e.state.AppendHistory(fmt.Sprintf(
			"The werewolves failed to name a valid target; the moderator picked %s at random.", target))
		e.record(transcript.KindSystem, leader.ID, entry)
	} else {
		e.record(transcript.KindSystem, leader.ID, fmt.Sprintf("the pack chose to eliminate %s", target))
	}

	e.state.Night.KillTarget = target
	e.state.KillLog = append(e.state.KillLog, fmt.Sprintf("night %d: the pack targeted %s", e.state.Day, target))
	e.wolves.Publish("game_master", "Confirmed. Tonight's target: "+target+".")
	e.public.Publish("game_master", "The werewolves have made their choice.")
}

// werewolfDiscussion runs two fixed rounds of private pack talk when
// more than one werewolf is alive. Every wolf sees all prior speech
// through the private channel; the transcript is returned for
// injection into the leader's decision prompt.
func (e *Engine) werewolfDiscussion(ctx context.Context, wolves []*Seat, targets []string) []string {
	if len(wolves) <= 1 {
		return nil
	}

	var names []string
	for _, w := range wolves {
		names = append(names, w.ID)
	}
	e.wolves.Publish("game_master", fmt.Sprintf(
		"Pack discussion begins. Living werewolves: %s. Possible targets: %s. Two rounds, one statement each.",
		strings.Join(names, ", "), strings.Join(targets, ", ")))

	var discussion []string
	for round := 1; round <= 2; round++ {
		for _, wolf := range wolves {
			mates := livingPackmates(wolf, e.state)
			prompt := prompts.WerewolfDiscussion(wolf.ID, e.state.Day, round, mates, wolf.Summary, targets)
			if !isAutomated(wolf.Actor) {
				prompt = prompts.WerewolfDiscussionHuman(round, mates, targets)
			}
			reply, err := e.ask(ctx, wolf, fmt.Sprintf("werewolf discussion round %d", round), prompt)
			if err != nil {
				log.Printf("[NIGHT] %s discussion turn failed: %v", wolf.ID, err)
				reply = "..."
			}
			discussion = append(discussion, fmt.Sprintf("[round %d] %s: %s", round, wolf.ID, reply))
			e.wolves.Publish(wolf.ID, reply)
			e.record(transcript.KindSpeech, wolf.ID, fmt.Sprintf("(pack discussion, round %d) %s", round, reply))
		}
	}

	e.wolves.Publish("game_master", fmt.Sprintf("Discussion over. %s decides for the pack.", wolves[0].ID))
	return discussion
}

// seerAction lets the seer inspect one living seat. The result is
// whispered to the seer only and recorded on the seat, never in the
// public history.
func (e *Engine) seerAction(ctx context.Context) {
	seer := e.state.AliveSeats(Seer)[0]
	targets := e.state.AliveIDs(seer.ID)
	if len(targets) == 0 {
		return
	}

	e.announce(transcript.KindAnnounce, "Seer, open your eyes and choose a player to inspect.")

	prompt := prompts.SeerCheck(seer.ID, e.state.Day, seer.Inspections, seer.Summary, targets)
	if !isAutomated(seer.Actor) {
		prompt = prompts.SeerCheckHuman(targets)
	}

	target := ""
	for attempt := 1; attempt <= 2 && target == ""; attempt++ {
		reply, err := e.ask(ctx, seer, fmt.Sprintf("seer inspection (attempt %d)", attempt), prompt)
		if err != nil {
			log.Printf("[NIGHT] %s inspection failed: %v", seer.ID, err)
			continue
		}
		if resolved, outcome := interpret.Resolve(reply, targets); outcome == interpret.Match {
			target = resolved
		}
	}

	if target == "" {
		broadcast.Whisper(seer.Actor, "No valid inspection target tonight.")
	} else {
		result := "Good"
		if e.state.Seat(target).Role == Werewolf {
			result = "a Werewolf"
		}
		seer.Inspections = append(seer.Inspections, fmt.Sprintf("night %d: %s is %s", e.state.Day, target, result))
		broadcast.Whisper(seer.Actor, fmt.Sprintf("Inspection result: %s is %s.", target, result))
		e.record(transcript.KindSystem, seer.ID, fmt.Sprintf("inspected %s: %s", target, result))
	}
	// Vague on purpose: the public must not learn whether a target
	// resolved.
	e.public.Publish("game_master", "The seer has finished the inspection.")
}

// witchAction offers the save when there is a victim and the antidote
// remains, then — only if no save happened — offers the poison. The
// poison consult is not gated on a kill target: on a peaceful night
// the witch may still poison.
func (e *Engine) witchAction(ctx context.Context) {
	witch := e.state.AliveSeats(Witch)[0]
	victim := e.state.Night.KillTarget

	e.announce(transcript.KindAnnounce, "Witch, open your eyes.")

	if victim != "" && e.state.Potions.Save {
		broadcast.Whisper(witch.Actor, fmt.Sprintf("Tonight, %s was attacked.", victim))
		prompt := prompts.WitchSave(witch.ID, e.state.Day, PotionStatus(e.state), witch.Summary, victim)
		if !isAutomated(witch.Actor) {
			prompt = prompts.WitchSaveHuman(victim)
		}
		reply, err := e.ask(ctx, witch, "witch antidote decision", prompt)
		if err != nil {
			log.Printf("[NIGHT] %s antidote decision failed: %v", witch.ID, err)
		} else if interpret.IsAffirmative(reply) {
			e.state.Night.Saved = true
			e.state.Potions.Save = false
			e.record(transcript.KindSystem, witch.ID, "used the antidote on "+victim)
		}
	}

	// Antidote and poison never both fire in one night.
	if e.state.Night.Saved || !e.state.Potions.Poison {
		return
	}
	targets := e.state.AliveIDs(witch.ID)
	if len(targets) == 0 {
		return
	}

	peaceful := victim == ""
	if peaceful {
		broadcast.Whisper(witch.Actor, "Nobody was attacked tonight.")
	}
	prompt := prompts.WitchPoison(witch.ID, e.state.Day, PotionStatus(e.state), witch.Summary, peaceful, targets)
	if !isAutomated(witch.Actor) {
		prompt = prompts.WitchPoisonHuman(peaceful, targets)
	}

	for attempt := 1; attempt <= 2; attempt++ {
		reply, err := e.ask(ctx, witch, fmt.Sprintf("witch poison decision (attempt %d)", attempt), prompt)
		if err != nil {
			log.Printf("[NIGHT] %s poison decision failed: %v", witch.ID, err)
			continue
		}
		resolved, outcome := interpret.Resolve(reply, targets)
		switch outcome {
		case interpret.Abstain:
			return
		case interpret.Match:
			e.state.Night.PoisonTarget = resolved
			e.state.Potions.Poison = false
			e.record(transcript.KindSystem, witch.ID, "used the poison on "+resolved)
			return
		}
	}
	// Unresolved after the attempt ceiling reads as a decline.
}

// settleNight applies the night's accumulated effects as a pure state
// transition: no broadcast happens here, the morning announcement
// reveals the outcome. A saved kill target records no death cause;
// poison is never blocked by a save because the two are mutually
// exclusive by construction.
func (e *Engine) settleNight() {
	ni := &e.state.Night
	if ni.KillTarget != "" && !ni.Saved {
		if e.state.MarkDead(ni.KillTarget, CauseWerewolf) {
			ni.Deaths = append(ni.Deaths, ni.KillTarget)
		}
	}
	if ni.PoisonTarget != "" {
		if e.state.MarkDead(ni.PoisonTarget, CausePoison) {
			ni.Deaths = append(ni.Deaths, ni.PoisonTarget)
		}
	}
	e.state.CheckWin()
}
