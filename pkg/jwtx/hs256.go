package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretBytes = 32

var (
	ErrWeakSecret = errors.New("jwtx: signing secret shorter than 32 bytes")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")

	// ErrInvalidToken is the single externally observable verification
	// failure. Malformed structure, a bad signature and expiry all collapse
	// into it so a caller cannot distinguish "expired" from "forged".
	ErrInvalidToken = errors.New("jwtx: invalid token")
)

// Signer signs claims into compact JWT strings.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a JWT string and returns its claims when legitimate.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Signer implements Signer over a shared symmetric secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 wraps the process-wide signing secret. Secrets shorter
// than 32 bytes are rejected outright.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < minSecretBytes {
		return nil, ErrWeakSecret
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns the claims into a signed three-segment JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// HS256Verifier validates JWTs signed with the same shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

// NewVerifierHS256 creates a verifier bound to an issuer. The verifier and
// the signer must share the same secret bytes.
func NewVerifierHS256(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) < minSecretBytes {
		return nil, ErrWeakSecret
	}
	return &HS256Verifier{secret: secret, issuer: issuer}, nil
}

// Verify parses and validates the token string. Any failure, structural,
// signature or temporal, returns ErrInvalidToken.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, ErrInvalidToken
	}

	return *claims, nil
}
