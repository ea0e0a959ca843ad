package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleDemo  Role = "demo"
)

const (
	adminSessionTTL = 24 * time.Hour
	demoSessionTTL  = 2 * time.Hour
)

type Credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	AccessCode string `json:"accessCode"`
}

type Session struct {
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	Username  string    `json:"username,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Claims struct {
	Role     Role   `json:"role"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator is the single server-side credential and session authority.
// Verification checks signature and expiry only; there is no revocation
// list, so logout is purely a client-side token deletion. This gate protects
// demo content, not real secrets.
type Authenticator struct {
	secret    []byte
	adminUser string
	adminPass string
	demoCode  string
	now       func() time.Time
}

func New(secret, adminUser, adminPass, demoCode string) *Authenticator {
	return &Authenticator{
		secret:    []byte(secret),
		adminUser: adminUser,
		adminPass: adminPass,
		demoCode:  demoCode,
		now:       time.Now,
	}
}

// AuthenticateAdmin checks the configured admin credentials and issues a
// 24-hour session token.
func (a *Authenticator) AuthenticateAdmin(creds Credentials) (Session, error) {
	if creds.Username != a.adminUser || creds.Password != a.adminPass {
		return Session{}, ErrInvalidCredentials
	}
	return a.issue(RoleAdmin, creds.Username, adminSessionTTL)
}

// AuthenticateDemo checks the demo access code and issues a 2-hour token.
func (a *Authenticator) AuthenticateDemo(creds Credentials) (Session, error) {
	if creds.AccessCode != a.demoCode {
		return Session{}, ErrInvalidCredentials
	}
	return a.issue(RoleDemo, "", demoSessionTTL)
}

// Verify parses and validates a bearer token. Only signature and expiry are
// checked.
func (a *Authenticator) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (a *Authenticator) issue(role Role, username string, ttl time.Duration) (Session, error) {
	now := a.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Role:     role,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "birdai",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	return Session{
		Token:     token,
		Role:      role,
		Username:  username,
		ExpiresAt: expiresAt,
	}, nil
}
