// README: Account service tests (token handling + DB-backed flows).
package auth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

func tokenService() *Service {
	return NewService(nil, "test-secret")
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	s := tokenService()

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		t.Fatal(err)
	}

	id, err := s.VerifyToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if id != "user-1" {
		t.Errorf("subject = %v", id)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tokenService().VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	s := tokenService()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	if _, err := tokenService().VerifyToken("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_MissingSubject(t *testing.T) {
	s := tokenService()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("WAYFARER_TEST_DSN")
	if dsn == "" {
		t.Skip("WAYFARER_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id            TEXT PRIMARY KEY,
            email         TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            created_at    TIMESTAMPTZ NOT NULL
        )`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE users"); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return NewStore(db)
}

func TestSignUpSignInFlow(t *testing.T) {
	svc := NewService(setupTestStore(t), "test-secret")
	ctx := context.Background()

	u, err := svc.SignUp(ctx, "trip@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == "" || u.PasswordHash == "hunter22" {
		t.Errorf("bad user: %+v", u)
	}

	if _, err := svc.SignUp(ctx, "trip@example.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	token, err := svc.SignIn(ctx, "trip@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.CurrentUser(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID || got.Email != u.Email {
		t.Errorf("current user = %+v", got)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	svc := NewService(setupTestStore(t), "test-secret")
	ctx := context.Background()

	if _, err := svc.SignIn(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if _, err := svc.SignUp(ctx, "known@example.com", "rightpass"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SignIn(ctx, "known@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestSignUp_EmptyCredentials(t *testing.T) {
	svc := NewService(nil, "test-secret")
	if _, err := svc.SignUp(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
