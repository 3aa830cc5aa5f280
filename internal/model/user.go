package model

import "time"

// User is a single roster entry. The display name is the primary key,
// so uniqueness is enforced by the store itself rather than by
// application-level locking.
type User struct {
	Name      string `gorm:"primaryKey"`
	CreatedAt time.Time
}
