package game

import (
	"fmt"
	"strings"
)

// PrivateContext is the role-appropriate hidden information injected
// into a seat's decision prompts. Pure function of seat and state:
// the seer sees its inspection record, the witch its potion status,
// a werewolf its living packmates and the pack's kill history, and a
// villager sees nothing.
func PrivateContext(seat *Seat, s *State) string {
	switch seat.Role {
	case Seer:
		if len(seat.Inspections) == 0 {
			return "You have not inspected anyone yet."
		}
		return "Your inspection record:\n" + strings.Join(seat.Inspections, "\n")
	case Witch:
		return PotionStatus(s)
	case Werewolf:
		var lines []string
		lines = append(lines, packmatesInfo(seat, s))
		if len(s.KillLog) == 0 {
			lines = append(lines, "The pack has not carried out any kill yet.")
		} else {
			lines = append(lines, "The pack's kill record:\n"+strings.Join(s.KillLog, "\n"))
		}
		return strings.Join(lines, "\n")
	}
	return "You are an ordinary villager with no special information."
}

// PotionStatus renders the witch's potion state.
func PotionStatus(s *State) string {
	status := func(ok bool) string {
		if ok {
			return "available"
		}
		return "spent"
	}
	return fmt.Sprintf("Your potions: antidote [%s], poison [%s].",
		status(s.Potions.Save), status(s.Potions.Poison))
}

// packmatesInfo names a werewolf's teammates with their status.
func packmatesInfo(seat *Seat, s *State) string {
	var mates []string
	for _, other := range s.Seats {
		if other.Role == Werewolf && other.ID != seat.ID {
			status := "alive"
			if !other.Alive {
				status = "dead"
			}
			mates = append(mates, fmt.Sprintf("%s (%s)", other.ID, status))
		}
	}
	if len(mates) == 0 {
		return "You are the only werewolf in the game."
	}
	return "Your packmates: " + strings.Join(mates, ", ") + "."
}

// livingPackmates lists a werewolf's living teammates by id.
func livingPackmates(seat *Seat, s *State) []string {
	var mates []string
	for _, other := range s.AliveSeats(Werewolf) {
		if other.ID != seat.ID {
			mates = append(mates, other.ID)
		}
	}
	return mates
}
