package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/expensio/expensio-backend/internal/domain"
)

// Token validation failures. Kept distinct for tests and logs; the
// middleware collapses all of them into one unauthenticated response so the
// caller cannot tell which check failed.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// HS256 wants at least a 256-bit secret.
const minSecretLen = 32

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and validates signed session tokens. Stateless: validity is
// a pure function of the token string, the secret and the clock. There is no
// server-side session table and no refresh flow; expiry forces a new login.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret []byte, ttl time.Duration) (*Tokens, error) {
	if len(secret) < minSecretLen {
		return nil, errors.New("auth: signing secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the time source used for both issuance and expiry
// checks. Tests only.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	t.now = now
	return t
}

// Issue signs a token for the given principal identity and role.
func (t *Tokens) Issue(userID uuid.UUID, role domain.Role) (string, error) {
	now := t.now()
	claims := sessionClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Validate verifies signature, expiry and claim structure, in that order of
// strictness, and returns the embedded principal.
func (t *Tokens) Validate(raw string) (Principal, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Principal{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, ErrTokenSignatureInvalid):
			return Principal{}, ErrTokenSignatureInvalid
		default:
			return Principal{}, ErrTokenMalformed
		}
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, ErrTokenMalformed
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return Principal{}, ErrTokenMalformed
	}
	return Principal{ID: uid, Role: role}, nil
}
