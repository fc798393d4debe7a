package services

import (
	"context"
	"fmt"
	"strings"

	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/repositories"
	"logisticshub/internal/utils"
)

type UserService struct {
	Repo      repositories.UserRepository
	RequestID string
}

func (s UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.List(ctx)
}

func normalizeRole(role string) (string, error) {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "" {
		return domain.RoleOperator, nil
	}
	if r != domain.RoleAdmin && r != domain.RoleOperator {
		return "", domain.ValidationError{Field: "role", Msg: "must be admin or operator"}
	}
	return r, nil
}

func (s UserService) Create(ctx context.Context, actor, username, password, role string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, domain.ValidationError{Field: "username", Msg: "required"}
	}
	r, err := normalizeRole(role)
	if err != nil {
		return 0, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}
	id, err := s.Repo.Create(ctx, models.User{Username: username, PasswordHash: hash, Role: r, Active: true})
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "users", "create", fmt.Sprintf("by=%s username=%s role=%s", actor, username, r))
	return id, nil
}

func (s UserService) ChangePassword(ctx context.Context, session domain.Session, id int64, password string) error {
	if !session.IsAdmin() && session.UserID != id {
		return domain.ValidationError{Field: "id", Msg: "can only change your own password"}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.Repo.SetPassword(ctx, id, hash); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "users", "change_password", fmt.Sprintf("by=%s id=%d", session.Username, id))
	return nil
}

func (s UserService) Deactivate(ctx context.Context, session domain.Session, id int64) error {
	if session.UserID == id {
		return domain.ValidationError{Field: "id", Msg: "cannot deactivate yourself"}
	}
	if err := s.Repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "users", "deactivate", fmt.Sprintf("by=%s id=%d", session.Username, id))
	return nil
}
