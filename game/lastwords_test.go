package game

import (
	"context"
	"testing"
)

func TestHunterShootsAfterVote(t *testing.T) {
	hunter := script("h0", "Avenge me.", "i shoot: w1")
	wolfWords := script("w1", "You only delayed the end.")
	e := newTestEngine(t, []*Seat{
		seatWith("h0", Hunter, hunter),
		seatWith("w1", Werewolf, wolfWords),
		seatWith("v2", Villager, script("v2")),
		seatWith("v3", Villager, script("v3")),
	})

	e.state.MarkDead("h0", CauseVote)
	e.handleDeath(context.Background(), e.state.Seat("h0"), true)

	if e.state.Seat("w1").Alive {
		t.Fatal("shot target still alive")
	}
	if cause := e.state.Night.DeathCause["w1"]; cause != CauseGunshot {
		t.Errorf("w1 death cause = %q, want gunshot", cause)
	}
	if !e.state.GameOver || e.state.Winner != WinnerGood {
		t.Errorf("GameOver=%v Winner=%q, want good victory", e.state.GameOver, e.state.Winner)
	}
	// The gunshot victim died by vote-phase chain, so last words apply.
	if !historyContains(e.state, "You only delayed the end.") {
		t.Error("shot victim's last words missing from the public record")
	}
	assertExhausted(t, hunter)
	assertExhausted(t, wolfWords)
}

func TestHunterPoisonedCannotShoot(t *testing.T) {
	hunter := script("h0")
	e := newTestEngine(t, []*Seat{
		seatWith("h0", Hunter, hunter),
		seatWith("w1", Werewolf, script("w1")),
		seatWith("v2", Villager, script("v2")),
		seatWith("v3", Villager, script("v3")),
	})

	e.state.Day = 2
	e.state.MarkDead("h0", CausePoison)
	e.handleDeath(context.Background(), e.state.Seat("h0"), false)

	if hunter.calls() != 0 {
		t.Errorf("poisoned hunter answered %d queries, want none", hunter.calls())
	}
	for _, id := range []string{"w1", "v2", "v3"} {
		if !e.state.Seat(id).Alive {
			t.Errorf("%s died to a poisoned hunter's gun", id)
		}
	}
}

func TestHunterNightKillStillShoots(t *testing.T) {
	// A hunter taken by the werewolves after the first night has no
	// last words, but the retaliation shot still fires.
	hunter := script("h0", "i shoot: w1")
	victim := script("w1")
	e := newTestEngine(t, []*Seat{
		seatWith("h0", Hunter, hunter),
		seatWith("w1", Werewolf, victim),
		seatWith("v2", Villager, script("v2")),
		seatWith("v3", Villager, script("v3")),
	})

	e.state.Day = 2
	e.state.MarkDead("h0", CauseWerewolf)
	e.handleDeath(context.Background(), e.state.Seat("h0"), false)

	if e.state.Seat("w1").Alive {
		t.Fatal("shot target still alive")
	}
	if hunter.calls() != 1 {
		t.Errorf("hunter answered %d queries, want the shot only", hunter.calls())
	}
	// The night-death rule silences the victim too.
	if victim.calls() != 0 {
		t.Errorf("night-chain victim answered %d queries, want none", victim.calls())
	}
	if !historyContains(e.state, "Hunter h0 shot w1") {
		t.Error("retaliation shot missing from the public record")
	}
}

func TestHunterHoldsFire(t *testing.T) {
	hunter := script("h0", "Goodbye all.", "decline")
	e := newTestEngine(t, []*Seat{
		seatWith("h0", Hunter, hunter),
		seatWith("w1", Werewolf, script("w1")),
		seatWith("v2", Villager, script("v2")),
		seatWith("v3", Villager, script("v3")),
	})

	e.state.MarkDead("h0", CauseVote)
	e.handleDeath(context.Background(), e.state.Seat("h0"), true)

	for _, id := range []string{"w1", "v2", "v3"} {
		if !e.state.Seat(id).Alive {
			t.Errorf("%s died after the hunter held fire", id)
		}
	}
	assertExhausted(t, hunter)
}

func TestHunterChainKeepsFiring(t *testing.T) {
	first := script("h0", "This is not over.", "i shoot: h1")
	second := script("h1", "Then I take one with me.", "i shoot: w2")
	wolf := script("w2", "Impossible.")
	e := newTestEngine(t, []*Seat{
		seatWith("h0", Hunter, first),
		seatWith("h1", Hunter, second),
		seatWith("w2", Werewolf, wolf),
		seatWith("v3", Villager, script("v3")),
	})

	e.state.MarkDead("h0", CauseVote)
	e.handleDeath(context.Background(), e.state.Seat("h0"), true)

	if e.state.Seat("h1").Alive || e.state.Seat("w2").Alive {
		t.Fatal("hunter chain stopped early")
	}
	if cause := e.state.Night.DeathCause["h1"]; cause != CauseGunshot {
		t.Errorf("h1 death cause = %q, want gunshot", cause)
	}
	if cause := e.state.Night.DeathCause["w2"]; cause != CauseGunshot {
		t.Errorf("w2 death cause = %q, want gunshot", cause)
	}
	if !e.state.GameOver || e.state.Winner != WinnerGood {
		t.Errorf("GameOver=%v Winner=%q, want good victory", e.state.GameOver, e.state.Winner)
	}
	for _, a := range []*scriptedActor{first, second, wolf} {
		assertExhausted(t, a)
	}
}

func TestHunterFallbackShotHitsSomeone(t *testing.T) {
	hunter := script("h0", "Farewell.", "blarg", "blarg", "blarg")
	e := newTestEngine(t, []*Seat{
		seatWith("h0", Hunter, hunter),
		seatWith("w1", Werewolf, script("w1")),
		seatWith("v2", Villager, script("v2")),
		seatWith("v3", Villager, script("v3")),
	})

	e.state.MarkDead("h0", CauseVote)
	e.handleDeath(context.Background(), e.state.Seat("h0"), true)

	var dead []string
	for _, id := range []string{"w1", "v2", "v3"} {
		if !e.state.Seat(id).Alive {
			dead = append(dead, id)
		}
	}
	if len(dead) < 1 {
		t.Fatal("fallback shot hit nobody")
	}
	if !historyContains(e.state, "random shot") {
		t.Error("fallback shot missing from the public record")
	}
}
