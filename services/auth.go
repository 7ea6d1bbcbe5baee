package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bar-website/models"
)

// Compared against when the e-mail is unknown, so a missing account costs the
// same bcrypt round as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// Claims are the admin session token claims.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService signs admins in and out and verifies their session tokens.
type AuthService struct {
	admins  AdminStore
	secret  []byte
	ttl     time.Duration
	watcher *SessionWatcher
	log     *zap.Logger
	now     func() time.Time
}

func NewAuthService(admins AdminStore, secret string, ttl time.Duration, watcher *SessionWatcher, log *zap.Logger) *AuthService {
	return &AuthService{
		admins:  admins,
		secret:  []byte(secret),
		ttl:     ttl,
		watcher: watcher,
		log:     log,
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignIn checks the credentials and returns a signed session token. Every
// failure other than a store error is reported as ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, models.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", models.Session{}, ErrInvalidCredentials
	}

	admin, err := s.admins.FindAdminByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.log.Error("load admin", zap.Error(err))
		return "", models.Session{}, fmt.Errorf("load admin: %w", err)
	}
	hash := dummyHash
	if admin != nil {
		hash = []byte(admin.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil || admin == nil {
		s.log.Info("admin sign-in failed")
		return "", models.Session{}, ErrInvalidCredentials
	}

	now := s.now()
	sess := models.Session{Email: admin.Email, ExpiresAt: now.Add(s.ttl).Truncate(time.Second)}
	claims := &Claims{
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", models.Session{}, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("admin signed in", zap.String("email", admin.Email))
	s.publish(admin.Email, true)
	return token, sess, nil
}

// Verify decodes a session token. Expired, tampered and foreign tokens fail.
func (s *AuthService) Verify(token string) (models.Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.Email == "" {
		return models.Session{}, ErrInvalidCredentials
	}
	sess := models.Session{Email: claims.Email}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// SignOut announces the end of a session. Tokens are stateless; the caller
// drops the cookie.
func (s *AuthService) SignOut(sess models.Session) {
	s.log.Info("admin signed out", zap.String("email", sess.Email))
	s.publish(sess.Email, false)
}

func (s *AuthService) publish(email string, signedIn bool) {
	if s.watcher == nil {
		return
	}
	s.watcher.Publish(models.SessionEvent{Email: email, SignedIn: signedIn, At: s.now()})
}

// CreateAdmin stores an admin account, replacing the password of an existing one.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		return invalid("email", "required")
	}
	if len(password) < 8 {
		return invalid("password", "must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.admins.UpsertAdmin(ctx, email, string(hash)); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	return nil
}
