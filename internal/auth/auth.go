// Package auth guards the admin API with a bcrypt-checked password exchanged
// for a short-lived bearer token.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates the supplied password does not match.
var ErrInvalidCredentials = eris.New("invalid credentials")

// ErrDisabled indicates no admin password hash is configured, so the admin API
// cannot be used at all.
var ErrDisabled = eris.New("admin access is not configured")

// ErrInvalidToken indicates the bearer token failed verification.
var ErrInvalidToken = eris.New("invalid or expired token")

const defaultTokenTTL = 24 * time.Hour

// Options configures the authenticator.
type Options struct {
	// PasswordHash is the bcrypt hash of the admin password. Empty disables
	// admin access instead of failing at boot.
	PasswordHash string
	// Secret signs issued HS256 tokens. Required when PasswordHash is set.
	Secret   string
	TokenTTL time.Duration
}

// Authenticator issues and verifies admin bearer tokens.
type Authenticator struct {
	passwordHash []byte
	secret       []byte
	tokenTTL     time.Duration
}

// New constructs the authenticator.
func New(opts Options) (*Authenticator, error) {
	if opts.PasswordHash != "" && opts.Secret == "" {
		return nil, eris.New("JWT secret is required when an admin password is configured")
	}

	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Authenticator{
		passwordHash: []byte(opts.PasswordHash),
		secret:       []byte(opts.Secret),
		tokenTTL:     ttl,
	}, nil
}

// Enabled reports whether admin access is configured.
func (a *Authenticator) Enabled() bool {
	return len(a.passwordHash) > 0
}

// Login checks the password and returns a signed bearer token.
func (a *Authenticator) Login(password string) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", eris.Wrap(ErrInvalidCredentials, "password mismatch")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", eris.Wrap(err, "signing token")
	}

	return token, nil
}

// Verify validates a bearer token previously issued by Login.
func (a *Authenticator) Verify(token string) error {
	if !a.Enabled() {
		return ErrDisabled
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return eris.Wrap(ErrInvalidToken, err.Error())
	}

	if !parsed.Valid {
		return ErrInvalidToken
	}

	return nil
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", eris.Wrap(err, "hashing password")
	}
	return string(hash), nil
}
