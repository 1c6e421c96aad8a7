package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Setup describes one game: roster size, role composition and the
// decision-service binding for every seat. Loaded from a YAML file
// before the engine starts; any inconsistency here is a fatal setup
// error, never a phase failure.
type Setup struct {
	NumSeats     int            `yaml:"num_seats"`
	Roles        map[string]int `yaml:"roles"`
	Models       []string       `yaml:"models"`
	SummaryModel string         `yaml:"summary_model"`
	Seats        []SeatSetup    `yaml:"seats"`
}

// SeatSetup configures a single seat. Model overrides the rotation
// pool's first entry; Human marks the seat as operator-controlled.
type SeatSetup struct {
	Model string `yaml:"model"`
	Human bool   `yaml:"human"`
}

var knownRoles = map[string]bool{
	"werewolf": true,
	"seer":     true,
	"witch":    true,
	"hunter":   true,
	"villager": true,
}

// LoadSetup reads and validates a game setup file.
func LoadSetup(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read setup file: %w", err)
	}
	var s Setup
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse setup file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate enforces the setup contract: the role composition must
// cover the roster exactly, every role must be known, and at least
// one werewolf must be present for the game to have two factions.
func (s *Setup) Validate() error {
	if s.NumSeats < 4 {
		return fmt.Errorf("setup: need at least 4 seats, got %d", s.NumSeats)
	}
	total := 0
	for role, count := range s.Roles {
		if !knownRoles[role] {
			return fmt.Errorf("setup: unknown role %q", role)
		}
		if count < 0 {
			return fmt.Errorf("setup: negative count for role %q", role)
		}
		total += count
	}
	if total != s.NumSeats {
		return fmt.Errorf("setup: role composition covers %d seats, roster has %d", total, s.NumSeats)
	}
	if s.Roles["werewolf"] == 0 {
		return fmt.Errorf("setup: at least one werewolf is required")
	}
	if len(s.Models) == 0 {
		return fmt.Errorf("setup: at least one model must be configured")
	}
	for i, m := range s.Models {
		if m == "" {
			return fmt.Errorf("setup: models[%d] is empty", i)
		}
	}
	if len(s.Seats) != 0 && len(s.Seats) != s.NumSeats {
		return fmt.Errorf("setup: seats lists %d entries, roster has %d", len(s.Seats), s.NumSeats)
	}
	return nil
}

// DealRoles expands the role composition into one role per seat and
// shuffles the assignment with the supplied source of randomness.
func (s *Setup) DealRoles(rng *rand.Rand) []string {
	roles := make([]string, 0, s.NumSeats)
	// Stable expansion order so the shuffle alone decides placement.
	for _, role := range []string{"werewolf", "seer", "witch", "hunter", "villager"} {
		for i := 0; i < s.Roles[role]; i++ {
			roles = append(roles, role)
		}
	}
	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	return roles
}

// SeatModel returns the model binding for seat index i, falling back
// to the first entry of the rotation pool.
func (s *Setup) SeatModel(i int) string {
	if i < len(s.Seats) && s.Seats[i].Model != "" {
		return s.Seats[i].Model
	}
	return s.Models[0]
}

// SeatHuman reports whether seat index i is operator-controlled.
func (s *Setup) SeatHuman(i int) bool {
	return i < len(s.Seats) && s.Seats[i].Human
}
