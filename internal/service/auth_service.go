package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"github.com/examgen/examgen-backend/internal/config"
	"github.com/examgen/examgen-backend/internal/model"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailNotAllowed    = errors.New("only @gmail.com addresses may register")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrGoogleAuthFailed   = errors.New("google authentication failed")
)

var gmailPattern = regexp.MustCompile(`^[^\s@]+@gmail\.com$`)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID int        `json:"user_id"`
	Role   model.Role `json:"role"`
}

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
}

// GoogleVerifier checks a Google ID token against the OAuth client ID.
type GoogleVerifier func(ctx context.Context, token, audience string) (*GoogleIdentity, error)

// VerifyGoogleIDToken validates token with Google's published keys.
func VerifyGoogleIDToken(ctx context.Context, token, audience string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return nil, err
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("token carries no email")
	}
	return &GoogleIdentity{Subject: payload.Subject, Email: email}, nil
}

// UserStore is the persistence AuthService needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	LinkGoogle(ctx context.Context, id int, googleID string) error
	UpsertAdmin(ctx context.Context, username, hash string) (*model.User, error)
}

// AuthService handles registration, login and JWTs.
type AuthService struct {
	cfg          *config.Config
	users        UserStore
	verifyGoogle GoogleVerifier
	log          zerolog.Logger
}

// NewAuthService creates a new AuthService. A nil verifier uses Google's.
func NewAuthService(cfg *config.Config, users UserStore, verify GoogleVerifier, log zerolog.Logger) *AuthService {
	if verify == nil {
		verify = VerifyGoogleIDToken
	}
	return &AuthService{
		cfg:          cfg,
		users:        users,
		verifyGoogle: verify,
		log:          log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Register creates a verified teacher account for a gmail address.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !gmailPattern.MatchString(username) {
		return nil, ErrEmailNotAllowed
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Username:        username,
		Email:           username,
		PasswordHash:    &hash,
		Role:            model.RoleTeacher,
		IsEmailVerified: true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info().Int("user_id", u.ID).Msg("user registered")
	return u, nil
}

// Login verifies a username/password pair and issues a token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Google-only accounts have no password to compare against.
	if u.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.CheckPassword(*u.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	return s.issue(u)
}

// GoogleLogin verifies a Google ID token, then finds, links or creates the
// matching local user.
func (s *AuthService) GoogleLogin(ctx context.Context, token string) (*model.LoginResponse, error) {
	ident, err := s.verifyGoogle(ctx, token, s.cfg.GoogleClientID)
	if err != nil {
		s.log.Warn().Err(err).Msg("google token rejected")
		return nil, ErrGoogleAuthFailed
	}

	email := strings.ToLower(ident.Email)
	u, err := s.users.GetByUsername(ctx, email)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		sub := ident.Subject
		u = &model.User{
			Username:        email,
			Email:           email,
			GoogleID:        &sub,
			Role:            model.RoleTeacher,
			IsEmailVerified: true,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("create google user: %w", err)
		}
	case err != nil:
		return nil, err
	case u.GoogleID == nil:
		if err := s.users.LinkGoogle(ctx, u.ID, ident.Subject); err != nil {
			return nil, fmt.Errorf("link google account: %w", err)
		}
		sub := ident.Subject
		u.GoogleID = &sub
	}

	return s.issue(u)
}

// SeedAdmin makes sure the configured bootstrap admin exists.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpsertAdmin(ctx, strings.ToLower(strings.TrimSpace(username)), hash)
}

// GenerateToken signs a JWT for the user.
func (s *AuthService) GenerateToken(userID int, role model.Role) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) issue(u *model.User) (*model.LoginResponse, error) {
	token, err := s.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &model.LoginResponse{Token: token, Role: u.Role, Username: u.Username}, nil
}
