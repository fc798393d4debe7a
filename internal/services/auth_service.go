package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/repositories"
	"logisticshub/internal/utils"
)

const minPasswordLen = 8

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

type AuthService struct {
	Users     repositories.UserRepository
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	RequestID string
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the credentials and issues a signed session token. Unknown
// users, inactive users and wrong passwords all fail the same way.
func (s AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, domain.UnauthorizedError{}
	}
	u, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, domain.UnauthorizedError{Err: err}
		}
		return LoginResult{}, err
	}
	if !u.Active {
		return LoginResult{}, domain.UnauthorizedError{}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		utils.LogWarn(s.RequestID, "auth", "login", "rejected password for "+username)
		return LoginResult{}, domain.UnauthorizedError{Err: err}
	}

	token, exp, err := s.Issue(domain.Session{UserID: u.ID, Username: u.Username, Role: u.Role})
	if err != nil {
		return LoginResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user=%s role=%s", u.Username, u.Role))
	return LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s AuthService) Issue(session domain.Session) (string, time.Time, error) {
	if len(s.Secret) == 0 {
		return "", time.Time{}, domain.InternalError{Msg: "token secret not configured"}
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	now := s.now()
	exp := now.Add(ttl)
	claims := Claims{
		UserID:   session.UserID,
		Username: session.Username,
		Role:     session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken validates a bearer token and returns the session it carries.
func (s AuthService) ParseToken(raw string) (domain.Session, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Session{}, domain.UnauthorizedError{Err: err}
	}
	if claims.UserID <= 0 || claims.Username == "" {
		return domain.Session{}, domain.UnauthorizedError{Err: errors.New("incomplete claims")}
	}
	return domain.Session{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// Authenticate parses raw and checks that its user still exists and is
// active, so deactivation takes effect on the next request. The role is
// taken from the user row, not from the token.
func (s AuthService) Authenticate(ctx context.Context, raw string) (domain.Session, error) {
	session, err := s.ParseToken(raw)
	if err != nil {
		return domain.Session{}, err
	}
	u, err := s.Users.Get(ctx, session.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Session{}, domain.UnauthorizedError{Err: err}
		}
		return domain.Session{}, err
	}
	if !u.Active {
		return domain.Session{}, domain.UnauthorizedError{Err: errors.New("user deactivated")}
	}
	return domain.Session{UserID: u.ID, Username: u.Username, Role: u.Role}, nil
}

func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
