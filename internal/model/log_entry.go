package model

import "time"

// Audit actions recorded for roster mutations.
const (
	ActionAdd    = "ADD"
	ActionDelete = "DELETE"
)

// LogEntry is an immutable audit record of a single roster mutation.
// Username is free text: entries outlive the user they refer to.
type LogEntry struct {
	ID        uint `gorm:"primaryKey"`
	Action    string
	Username  string
	CreatedAt time.Time
}
