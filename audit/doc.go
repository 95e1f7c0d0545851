package audit

import "time"

// New builds an Entry stamped with the current time. Callers fill Category,
// EventType, Description, TargetType, TargetID, and optional OrgID/ActorID/
// Metadata/EventHash.
func New(category Category, eventType EventType, description, targetType, targetID string) Entry {
	return Entry{
		Category:    category,
		EventType:   eventType,
		Description: description,
		TargetType:  targetType,
		TargetID:    targetID,
		Timestamp:   time.Now(),
	}
}
