// Package broadcast is the notification fabric between the game
// master and the seats: a public channel for everyone, a private
// channel for the werewolf subgroup, and single-seat whispers.
// Channels fan out and store nothing; state mutation stays with the
// orchestrator.
package broadcast

import (
	"fmt"

	"werewolf/actor"
)

// Channel fans messages out to a fixed set of member actors.
type Channel struct {
	name    string
	private bool
	members []actor.Actor
}

// New creates a channel. private marks every publication on it as
// hidden information (the werewolf channel).
func New(name string, private bool, members ...actor.Actor) *Channel {
	return &Channel{name: name, private: private, members: members}
}

// Name returns the channel's label.
func (c *Channel) Name() string { return c.name }

// Publish delivers sender's text to every member.
func (c *Channel) Publish(sender, text string) {
	line := fmt.Sprintf("%s: %s", sender, text)
	for _, m := range c.members {
		m.Notify(line, c.private)
	}
}

// Whisper delivers text privately to a single seat.
func Whisper(a actor.Actor, text string) {
	a.Notify(text, true)
}
