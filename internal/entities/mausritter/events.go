package mausritter

import "github.com/KirkDiggler/rpg-toolkit/events"

// Event types published on the rpg-toolkit bus. The event source is the
// character; for hireling edits the target is the hireling.
const (
	EventCharacterChanged = "character.changed"
	EventCharacterDeleted = "character.deleted"
)

// NewChangedEvent builds a change notification for c
func NewChangedEvent(c *Character, target *Hireling) events.Event {
	if target != nil {
		return events.NewGameEvent(EventCharacterChanged, c, target)
	}
	return events.NewGameEvent(EventCharacterChanged, c, nil)
}

// NewDeletedEvent builds a deletion notification for c
func NewDeletedEvent(c *Character) events.Event {
	return events.NewGameEvent(EventCharacterDeleted, c, nil)
}
