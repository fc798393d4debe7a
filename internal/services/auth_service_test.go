package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"logisticshub/internal/domain"
	"logisticshub/internal/repositories"
)

var userCols = []string{"id", "username", "password_hash", "role", "active", "created_at"}

func testHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestLoginIssuesTokenThatParsesBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE username=").WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "admin", testHash(t, "s3cret-pass"), "admin", true, time.Now()))

	svc := AuthService{Users: repositories.UserRepository{DB: db}, Secret: []byte("test-secret"), TTL: time.Hour}
	res, err := svc.Login(context.Background(), " admin ", "s3cret-pass")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if res.Token == "" || res.User.Username != "admin" {
		t.Fatalf("unexpected login result: %+v", res)
	}

	session, err := svc.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if session.UserID != 1 || !session.IsAdmin() {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash := testHash(t, "right-password")
	mock.ExpectQuery("FROM users").WithArgs("ops").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, "ops", hash, "operator", true, time.Now()))
	mock.ExpectQuery("FROM users").WithArgs("gone").
		WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectQuery("FROM users").WithArgs("old").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(3, "old", hash, "operator", false, time.Now()))

	svc := AuthService{Users: repositories.UserRepository{DB: db}, Secret: []byte("test-secret")}
	for _, c := range [][2]string{{"ops", "wrong-password"}, {"gone", "right-password"}, {"old", "right-password"}, {"", "x"}} {
		if _, err := svc.Login(context.Background(), c[0], c[1]); !domain.IsUnauthorized(err) {
			t.Fatalf("login %q: expected unauthorized, got %v", c[0], err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestParseTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	issuer := AuthService{Secret: []byte("test-secret"), TTL: time.Hour, Now: func() time.Time { return issuedAt }}
	token, _, err := issuer.Issue(domain.Session{UserID: 4, Username: "ops", Role: domain.RoleOperator})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	later := issuer
	later.Now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := later.ParseToken(token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	other := issuer
	other.Secret = []byte("another-secret")
	if _, err := other.ParseToken(token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected foreign token to be rejected, got %v", err)
	}
}

func TestAuthenticateRejectsDeactivatedUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := AuthService{Users: repositories.UserRepository{DB: db}, Secret: []byte("test-secret"), TTL: 12 * time.Hour}
	token, _, err := svc.Issue(domain.Session{UserID: 5, Username: "ops", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	// active, but demoted since the token was issued
	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(5, "ops", "x", "operator", true, time.Now()))
	session, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate error: %v", err)
	}
	if session.Role != domain.RoleOperator {
		t.Fatalf("expected role from the user row, got %q", session.Role)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(5, "ops", "x", "operator", false, time.Now()))
	if _, err := svc.Authenticate(context.Background(), token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected deactivated user to be rejected, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userCols))
	if _, err := svc.Authenticate(context.Background(), token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected deleted user to be rejected, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHashPasswordMinLength(t *testing.T) {
	if _, err := HashPassword("short"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
