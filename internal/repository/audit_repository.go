package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chat-relay/internal/model"
)

// AuditRepository reads and appends audit log entries. Entries are
// append-only; nothing in the system updates or removes them.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append writes a single entry outside any roster transaction.
func (r *AuditRepository) Append(ctx context.Context, action, username string) error {
	return appendEntry(r.db.WithContext(ctx), action, username)
}

// List returns all entries ordered newest first.
func (r *AuditRepository) List(ctx context.Context) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	return entries, nil
}

// appendEntry inserts an audit row on the given handle, which may be a
// transaction opened by a roster mutation.
func appendEntry(tx *gorm.DB, action, username string) error {
	entry := model.LogEntry{Action: action, Username: username, CreatedAt: time.Now()}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}
