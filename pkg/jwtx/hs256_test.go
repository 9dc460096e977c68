package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

const testIssuer = "userhub-test"

func newTestPair(t *testing.T) (*HS256Signer, *HS256Verifier) {
	t.Helper()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := NewVerifierHS256(testSecret, testIssuer)
	require.NoError(t, err)

	return signer, verifier
}

func TestNewSignerHS256_WeakSecret(t *testing.T) {
	_, err := NewSignerHS256([]byte("short"))
	require.ErrorIs(t, err, ErrWeakSecret)

	_, err = NewVerifierHS256(nil, testIssuer)
	require.ErrorIs(t, err, ErrWeakSecret)
}

func TestSignAndVerify_RoundTrip(t *testing.T) {
	signer, verifier := newTestPair(t)

	claims := NewAccessClaims("01JD2XHN0WBCA3T6RPMRC5H2P8", testIssuer, time.Hour, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	// Compact JWS form: header.payload.signature
	require.Len(t, strings.Split(token, "."), 3)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01JD2XHN0WBCA3T6RPMRC5H2P8", got.Subject)
	require.Equal(t, testIssuer, got.Issuer)
	require.NotEmpty(t, got.ID, "jti should be set")
}

func TestVerify_TamperedSignature(t *testing.T) {
	signer, verifier := newTestPair(t)

	token, err := signer.Sign(NewAccessClaims("acct-1", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = verifier.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	signer, verifier := newTestPair(t)

	// Issued in the past with a TTL that has already elapsed; the signature
	// is still valid.
	issued := time.Now().Add(-2 * time.Hour)
	token, err := signer.Sign(NewAccessClaims("acct-1", testIssuer, time.Hour, issued))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	_, verifier := newTestPair(t)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d", "only..dots"} {
		_, err := verifier.Verify(bad)
		require.ErrorIs(t, err, ErrInvalidToken, "input %q", bad)
	}
}

func TestVerify_WrongIssuer(t *testing.T) {
	signer, verifier := newTestPair(t)

	token, err := signer.Sign(NewAccessClaims("acct-1", "someone-else", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	signer, _ := newTestPair(t)

	other, err := NewVerifierHS256([]byte("ffffffffffffffffffffffffffffffff"), testIssuer)
	require.NoError(t, err)

	token, err := signer.Sign(NewAccessClaims("acct-1", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now()

	fresh := NewAccessClaims("a", testIssuer, time.Hour, now)
	require.NoError(t, fresh.ValidateExpiry())

	expired := NewAccessClaims("a", testIssuer, time.Minute, now.Add(-time.Hour))
	require.ErrorIs(t, expired.ValidateExpiry(), ErrExpired)

	future := NewAccessClaims("a", testIssuer, time.Hour, now.Add(time.Hour))
	require.ErrorIs(t, future.ValidateExpiry(), ErrNotYetValid)
}
