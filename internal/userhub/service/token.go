package service

import (
	"time"

	"github.com/arralabs/userhub/pkg/jwtx"
)

// TokenService issues bearer tokens binding a session to an account id.
// The signer wraps the process-wide secret loaded at startup; expiry is a
// fixed policy-configured duration from issuance.
type TokenService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
}

// Issue mints a signed token whose subject claim is the account id.
func (s *TokenService) Issue(userID string) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(userID, s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}
