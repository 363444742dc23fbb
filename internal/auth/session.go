package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for every token that fails verification,
// whether it is malformed, tampered with, or expired.
var ErrInvalidToken = errors.New("invalid session token")

// Session is the identity carried by a verified token.
type Session struct {
	AdminID   int64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type claims struct {
	AdminID  int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256-signed session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret []byte, ttl time.Duration) *Sessions {
	return &Sessions{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the given admin that expires after the configured TTL.
func (s *Sessions) Issue(adminID int64, username string) (string, error) {
	now := s.now()
	c := &claims{
		AdminID:  adminID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(adminID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *Sessions) Verify(token string) (*Session, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || c.AdminID == 0 || c.IssuedAt == nil || c.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &Session{
		AdminID:   c.AdminID,
		Username:  c.Username,
		IssuedAt:  c.IssuedAt.Time,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
