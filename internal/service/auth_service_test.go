package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/examgen/examgen-backend/internal/config"
	"github.com/examgen/examgen-backend/internal/model"
)

type memUsers struct {
	byName map[string]*model.User
	nextID int
	linked map[int]string
}

func newMemUsers() *memUsers {
	return &memUsers{byName: map[string]*model.User{}, linked: map[int]string{}}
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	if _, ok := m.byName[u.Username]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	cp := *u
	m.byName[u.Username] = &cp
	return nil
}

func (m *memUsers) LinkGoogle(_ context.Context, id int, googleID string) error {
	m.linked[id] = googleID
	for _, u := range m.byName {
		if u.ID == id {
			u.GoogleID = &googleID
		}
	}
	return nil
}

func (m *memUsers) UpsertAdmin(_ context.Context, username, hash string) (*model.User, error) {
	u, ok := m.byName[username]
	if !ok {
		m.nextID++
		u = &model.User{ID: m.nextID, Username: username, Email: username}
		m.byName[username] = u
	}
	u.PasswordHash = &hash
	u.Role = model.RoleAdmin
	cp := *u
	return &cp, nil
}

func newTestAuth(users UserStore, verify GoogleVerifier) *AuthService {
	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		BcryptCost:     bcrypt.MinCost,
		GoogleClientID: "client-123",
	}
	return NewAuthService(cfg, users, verify, zerolog.Nop())
}

func TestRegister_GmailOnly(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{"gmail", "teacher@gmail.com", nil},
		{"gmail upper case", "  Teacher2@GMAIL.com ", nil},
		{"other domain", "teacher@school.edu", ErrEmailNotAllowed},
		{"gmail lookalike", "teacher@gmail.com.evil.io", ErrEmailNotAllowed},
		{"whitespace in local part", "a b@gmail.com", ErrEmailNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := newTestAuth(newMemUsers(), nil)
			u, err := auth.Register(context.Background(), model.RegisterRequest{Username: tt.username, Password: "secret123"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if u.Role != model.RoleTeacher || !u.IsEmailVerified {
				t.Errorf("user = %+v, want verified teacher", u)
			}
			if u.Username != strings.ToLower(strings.TrimSpace(tt.username)) {
				t.Errorf("username = %q", u.Username)
			}
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	auth := newTestAuth(newMemUsers(), nil)
	req := model.RegisterRequest{Username: "dup@gmail.com", Password: "secret123"}
	if _, err := auth.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := auth.Register(context.Background(), req); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("second register err = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin(t *testing.T) {
	users := newMemUsers()
	auth := newTestAuth(users, nil)
	ctx := context.Background()
	if _, err := auth.Register(ctx, model.RegisterRequest{Username: "t@gmail.com", Password: "secret123"}); err != nil {
		t.Fatal(err)
	}

	res, err := auth.Login(ctx, model.LoginRequest{Username: "T@gmail.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Role != model.RoleTeacher || res.Username != "t@gmail.com" {
		t.Errorf("response = %+v", res)
	}

	claims, err := auth.ValidateToken(res.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 1 || claims.Role != model.RoleTeacher {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := auth.Login(ctx, model.LoginRequest{Username: "t@gmail.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := auth.Login(ctx, model.LoginRequest{Username: "nobody@gmail.com", Password: "x"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user err = %v", err)
	}
}

func TestLogin_GoogleOnlyAccountHasNoPassword(t *testing.T) {
	users := newMemUsers()
	sub := "g-1"
	_ = users.Create(context.Background(), &model.User{Username: "g@gmail.com", GoogleID: &sub, Role: model.RoleTeacher})
	auth := newTestAuth(users, nil)

	_, err := auth.Login(context.Background(), model.LoginRequest{Username: "g@gmail.com", Password: "anything"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	auth := newTestAuth(newMemUsers(), nil)
	other := newTestAuth(newMemUsers(), nil)
	other.cfg.JWTSecret = "different"

	token, err := other.GenerateToken(7, model.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.ValidateToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
	if _, err := auth.ValidateToken("not-a-jwt"); err == nil {
		t.Error("garbage token was accepted")
	}
}

func TestGoogleLogin(t *testing.T) {
	verify := func(_ context.Context, token, audience string) (*GoogleIdentity, error) {
		if audience != "client-123" {
			t.Errorf("audience = %q", audience)
		}
		if token != "good" {
			return nil, errors.New("bad token")
		}
		return &GoogleIdentity{Subject: "google-sub", Email: "New.User@gmail.com"}, nil
	}

	t.Run("creates user", func(t *testing.T) {
		users := newMemUsers()
		auth := newTestAuth(users, verify)
		res, err := auth.GoogleLogin(context.Background(), "good")
		if err != nil {
			t.Fatalf("GoogleLogin: %v", err)
		}
		if res.Username != "new.user@gmail.com" || res.Role != model.RoleTeacher {
			t.Errorf("response = %+v", res)
		}
		u := users.byName["new.user@gmail.com"]
		if u == nil || u.GoogleID == nil || *u.GoogleID != "google-sub" {
			t.Errorf("stored user = %+v", u)
		}
	})

	t.Run("links existing account", func(t *testing.T) {
		users := newMemUsers()
		auth := newTestAuth(users, verify)
		if _, err := auth.Register(context.Background(), model.RegisterRequest{Username: "new.user@gmail.com", Password: "secret123"}); err != nil {
			t.Fatal(err)
		}
		if _, err := auth.GoogleLogin(context.Background(), "good"); err != nil {
			t.Fatalf("GoogleLogin: %v", err)
		}
		if users.linked[1] != "google-sub" {
			t.Errorf("linked = %v", users.linked)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		auth := newTestAuth(newMemUsers(), verify)
		if _, err := auth.GoogleLogin(context.Background(), "bad"); !errors.Is(err, ErrGoogleAuthFailed) {
			t.Fatalf("err = %v, want ErrGoogleAuthFailed", err)
		}
	})
}

func TestSeedAdmin(t *testing.T) {
	users := newMemUsers()
	auth := newTestAuth(users, nil)
	u, err := auth.SeedAdmin(context.Background(), " Admin@Example.com ", "adminpass")
	if err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	if u.Role != model.RoleAdmin || u.Username != "admin@example.com" {
		t.Errorf("user = %+v", u)
	}
	if _, err := auth.Login(context.Background(), model.LoginRequest{Username: "admin@example.com", Password: "adminpass"}); err != nil {
		t.Errorf("admin login: %v", err)
	}
}
