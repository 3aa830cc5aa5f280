package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chat-relay/internal/model"
)

// RosterRepository manages roster entries. Every mutation appends its
// audit record inside the same transaction, so a committed mutation
// always has exactly one matching log entry and a rolled-back one has
// none.
type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// AddUser inserts a new roster entry together with its ADD audit
// record. ErrDuplicateUser when the name is already taken; the roster
// and the audit log are left untouched in that case.
func (r *RosterRepository) AddUser(ctx context.Context, name string) (*model.User, error) {
	user := model.User{Name: name, CreatedAt: time.Now()}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUser
			}
			return fmt.Errorf("create user: %w", err)
		}
		return appendEntry(tx, model.ActionAdd, name)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the named entry and appends its DELETE audit
// record. ErrUserNotFound when no row matched; no audit record is
// written for a miss.
func (r *RosterRepository) DeleteUser(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("name = ?", name).Delete(&model.User{})
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return appendEntry(tx, model.ActionDelete, name)
	})
}

// ListUsers returns the roster ordered newest first.
func (r *RosterRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC, name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
