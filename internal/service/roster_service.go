package service

import (
	"context"
	"errors"
	"strings"

	"chat-relay/internal/model"
	"chat-relay/internal/repository"
)

// ErrUsernameRequired is returned when a roster operation is invoked
// without a name.
var ErrUsernameRequired = errors.New("username is required")

// RosterService wraps roster mutations with input validation.
type RosterService struct {
	roster *repository.RosterRepository
	audit  *repository.AuditRepository
}

func NewRosterService(roster *repository.RosterRepository, audit *repository.AuditRepository) *RosterService {
	return &RosterService{roster: roster, audit: audit}
}

func (s *RosterService) AddUser(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUsernameRequired
	}
	return s.roster.AddUser(ctx, name)
}

func (s *RosterService) DeleteUser(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrUsernameRequired
	}
	return s.roster.DeleteUser(ctx, name)
}

func (s *RosterService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.roster.ListUsers(ctx)
}

func (s *RosterService) ListLog(ctx context.Context) ([]model.LogEntry, error) {
	return s.audit.List(ctx)
}
