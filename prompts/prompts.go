// Package prompts builds the instruction text sent through decision
// queries. Builders are pure functions of the snapshots passed in;
// nothing here reads game state. Human-actor variants are short and
// name the accepted inputs explicitly.
package prompts

import (
	"fmt"
	"strings"
)

// RoleLabel maps a role id to its display name.
func RoleLabel(role string) string {
	switch role {
	case "werewolf":
		return "Werewolf"
	case "seer":
		return "Seer"
	case "witch":
		return "Witch"
	case "hunter":
		return "Hunter"
	case "villager":
		return "Villager"
	}
	return role
}

// System returns the standing instruction an automated actor is
// seeded with at setup.
func System(seat, role string) string {
	goal := "find the werewolves and have them voted out"
	if role == "werewolf" {
		goal = "hide your identity, mislead the village and protect your packmates"
	}
	return fmt.Sprintf(
		"You are %s, a player in a werewolf social-deduction game. Your secret role is %s. "+
			"Your goal: %s. Stay in character, answer concisely, and never reveal hidden information unless it serves your side.",
		seat, RoleLabel(role), goal)
}

// WerewolfDiscussion prompts one werewolf's turn in the private
// night discussion.
func WerewolfDiscussion(seat string, day, round int, teammates []string, summary string, targets []string) string {
	task := "Analyze the situation and propose the best elimination target, with a short reason. " +
		"Consider who is likely a power role and who threatens the pack most. One or two sentences."
	if round == 2 {
		task = "This is the second round. Weigh in on your packmates' suggestions; agree or argue for a different target. One or two sentences."
	}
	return fmt.Sprintf(
		"You are %s, a Werewolf. It is night %d, werewolf discussion round %d of 2.\n\n"+
			"=== Your pack ===\n%s\n\n"+
			"=== Your memory of the game so far ===\n%s\n\n"+
			"=== Possible targets ===\n%s\n\n"+
			"=== Your task ===\n%s",
		seat, day, round, teammatesLine(teammates), summaryLine(summary), strings.Join(targets, ", "), task)
}

// WerewolfDiscussionHuman is the short operator variant.
func WerewolfDiscussionHuman(round int, teammates, targets []string) string {
	return fmt.Sprintf(
		"[Werewolf discussion, round %d/2]\nPackmates: %s\nPossible targets: %s\nSpeak (one or two sentences proposing or debating a target):",
		round, teammatesLine(teammates), strings.Join(targets, ", "))
}

// KillDecision prompts the designated werewolf for the final kill.
func KillDecision(seat string, day int, teammates string, summary string, discussion []string, targets []string) string {
	transcript := ""
	if len(discussion) > 0 {
		transcript = fmt.Sprintf("\n=== Tonight's pack discussion ===\n%s\n", strings.Join(discussion, "\n"))
	}
	return fmt.Sprintf(
		"You are %s, a Werewolf, speaking for the pack. It is night %d.\n\n"+
			"=== Your pack ===\n%s\n\n"+
			"=== Your memory of the game so far ===\n%s\n%s\n"+
			"=== Your task ===\n"+
			"Choose one player to eliminate tonight from: %s\n"+
			"Weigh the game so far%s and pick the target that serves the pack best.\n"+
			"Answer strictly in the form 'we eliminate: [player name]'.",
		seat, day, teammates, summaryLine(summary), transcript,
		strings.Join(targets, ", "), discussionClause(discussion))
}

// KillDecisionHuman is the short operator variant.
func KillDecisionHuman(targets []string) string {
	return fmt.Sprintf(
		"You speak for the werewolf pack. Choose one player to eliminate tonight from:\n%s\nEnter the player's name or number:",
		strings.Join(targets, ", "))
}

// SeerCheck prompts the seer for an inspection target.
func SeerCheck(seat string, day int, inspections []string, summary string, targets []string) string {
	record := "You have not inspected anyone yet."
	if len(inspections) > 0 {
		record = "Your inspection record:\n" + strings.Join(inspections, "\n")
	}
	return fmt.Sprintf(
		"You are %s, the Seer. It is night %d.\n\n"+
			"=== Your inspection record ===\n%s\n\n"+
			"=== Your memory of the game so far ===\n%s\n\n"+
			"=== Your task ===\n"+
			"Choose one living player to inspect from: %s\n"+
			"Answer strictly in the form 'i check: [player name]'.",
		seat, day, record, summaryLine(summary), strings.Join(targets, ", "))
}

// SeerCheckHuman is the short operator variant.
func SeerCheckHuman(targets []string) string {
	return fmt.Sprintf(
		"You are the Seer. Choose one player to inspect:\n%s\nEnter the player's name or number:",
		strings.Join(targets, ", "))
}

// WitchSave asks the witch whether to spend the antidote on tonight's
// victim.
func WitchSave(seat string, day int, potions, summary, victim string) string {
	return fmt.Sprintf(
		"You are %s, the Witch. It is night %d.\n\n"+
			"=== Your potions ===\n%s\n\n"+
			"=== Your memory of the game so far ===\n%s\n\n"+
			"=== Tonight ===\n"+
			"Player %s was attacked tonight. You hold one antidote that would save them.\n"+
			"If you use it, reply exactly: use the antidote\n"+
			"If you do not, reply exactly: do not use the antidote",
		seat, day, potions, summaryLine(summary), victim)
}

// WitchSaveHuman is the short operator variant.
func WitchSaveHuman(victim string) string {
	return fmt.Sprintf(
		"Player %s was attacked tonight. Use your antidote to save them?\nEnter 'y'/'yes'/'save' to use it, 'n'/'no'/'skip' to hold it:",
		victim)
}

// WitchPoison asks the witch whether to spend the poison, and on whom.
func WitchPoison(seat string, day int, potions, summary string, peaceful bool, targets []string) string {
	note := ""
	if peaceful {
		note = "Nobody was attacked tonight.\n"
	}
	return fmt.Sprintf(
		"You are %s, the Witch. It is night %d.\n\n"+
			"=== Your potions ===\n%s\n\n"+
			"=== Your memory of the game so far ===\n%s\n\n"+
			"=== Your task ===\n"+
			"%sYou still hold one poison. You may use it on another living player, or hold it.\n"+
			"To use it, answer strictly in the form 'i poison: [player name]'.\n"+
			"To hold it, reply exactly: decline\n"+
			"Possible targets: %s",
		seat, day, potions, summaryLine(summary), note, strings.Join(targets, ", "))
}

// WitchPoisonHuman is the short operator variant.
func WitchPoisonHuman(peaceful bool, targets []string) string {
	note := ""
	if peaceful {
		note = "Nobody was attacked tonight.\n"
	}
	return fmt.Sprintf(
		"%sUse your poison? Enter a player's name or number to poison them, or 'n'/'no'/'skip' to hold it.\nPossible targets: %s",
		note, strings.Join(targets, ", "))
}

// DaySpeech prompts one seat's free-discussion turn.
func DaySpeech(seat, role string, day int, private, summary, morning string, alive []string, order string, spoken []string) string {
	record := "You speak first today."
	if len(spoken) > 0 {
		record = strings.Join(spoken, "\n")
	}
	return fmt.Sprintf(
		"It is day %d, free discussion.\n"+
			"You are %s, your role is %s.\n%s\n\n"+
			"=== Your private information ===\n%s\n\n"+
			"=== Your memory of the game so far ===\n%s\n\n"+
			"=== Public information this round ===\n"+
			"- Last night: %s\n"+
			"- Living players: %s\n"+
			"- Speeches so far today:\n---\n%s\n---\n\n"+
			"=== Your task ===\n"+
			"Speak in character. Good-aligned players work toward voting out a werewolf; werewolves deflect and protect the pack.\n"+
			"Give only your speech, with no reasoning or analysis preamble.",
		day, seat, RoleLabel(role), order, private, summaryLine(summary), morning,
		strings.Join(alive, ", "), record)
}

// Vote prompts one seat's vote.
func Vote(seat, role string, day int, private, summary string, discussion []string, targets []string) string {
	return fmt.Sprintf(
		"It is day %d, voting.\n"+
			"You are %s, your role is %s.\n\n"+
			"=== Your private information ===\n%s\n\n"+
			"=== Your memory of the game so far ===\n%s\n\n"+
			"=== Today's speeches ===\n%s\n\n"+
			"=== Your task ===\n"+
			"Vote to eliminate one living player from: [%s]\n"+
			"Answer strictly in the form 'i vote for: [player name]', with nothing else.\n"+
			"To abstain, reply exactly: abstain",
		day, seat, RoleLabel(role), private, summaryLine(summary),
		strings.Join(discussion, "\n"), strings.Join(targets, ", "))
}

// VoteHuman is the short operator variant.
func VoteHuman(targets []string) string {
	return fmt.Sprintf(
		"Vote to eliminate one player:\n%s\nEnter a name or number, or 'abstain' to abstain:",
		strings.Join(targets, ", "))
}

// LastWords prompts an eliminated seat's final statement.
func LastWords(seat, role string, day int, private, summary string, discussion []string) string {
	record := "(eliminated on the first night, no speeches yet)"
	if len(discussion) > 0 {
		record = strings.Join(discussion, "\n")
	}
	return fmt.Sprintf(
		"You have been eliminated. It is day %d, your last words.\n"+
			"You are %s, your role is %s.\n\n"+
			"=== Your private information ===\n%s\n\n"+
			"=== Your memory of the game so far ===\n%s\n\n"+
			"=== Today's speeches ===\n%s\n\n"+
			"=== Your task ===\n"+
			"Give your final public statement. Give only the statement, with no reasoning preamble.",
		day, seat, RoleLabel(role), private, summaryLine(summary), record)
}

// LastWordsHuman is the short operator variant.
func LastWordsHuman() string {
	return "You have been eliminated. Enter your last words:"
}

// HunterShot prompts an eliminated hunter for a retaliation target.
func HunterShot(seat string, summary string, discussion []string, targets []string) string {
	return fmt.Sprintf(
		"You are %s, the Hunter, and you have been eliminated. You may fire one shot and take a living player with you.\n\n"+
			"=== Your memory of the game so far ===\n%s\n\n"+
			"=== Today's speeches ===\n%s\n\n"+
			"=== Your task ===\n"+
			"Choose one living player to shoot from: %s\n"+
			"Answer strictly in the form 'i shoot: [player name]'. To hold your fire, reply exactly: decline",
		seat, summaryLine(summary), strings.Join(discussion, "\n"), strings.Join(targets, ", "))
}

// HunterShotHuman is the short operator variant.
func HunterShotHuman(targets []string) string {
	return fmt.Sprintf(
		"You are the Hunter and may shoot one player as you die:\n%s\nEnter a name or number, or 'decline' to hold your fire:",
		strings.Join(targets, ", "))
}

// SummaryFold instructs the summarization service to merge new events
// into a seat's running summary.
func SummaryFold(previous string, events []string) string {
	return fmt.Sprintf(
		"You are a neutral scribe for a werewolf game. Fold the new events below into the prior recap.\n"+
			"Stick strictly to facts, keep chronological order around key events (votes, eliminations, notable speeches, shots),\n"+
			"and include no analysis, guesses or advice. The merged recap must stay under 350 words.\n\n"+
			"=== Prior recap ===\n%s\n\n"+
			"=== New events ===\n%s\n\n"+
			"=== Updated recap ===",
		summaryLine(previous), strings.Join(events, "\n"))
}

func summaryLine(summary string) string {
	if strings.TrimSpace(summary) == "" {
		return "The game has just begun; there is no history yet."
	}
	return summary
}

func teammatesLine(teammates []string) string {
	if len(teammates) == 0 {
		return "You are the only werewolf in the game."
	}
	return "Your packmates: " + strings.Join(teammates, ", ")
}

func discussionClause(discussion []string) string {
	if len(discussion) > 0 {
		return " and tonight's discussion"
	}
	return ""
}
