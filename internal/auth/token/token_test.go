package token

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, ttl time.Duration) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(Config{Secret: "test-secret", TTL: ttl})
	require.NoError(t, err)
	return issuer
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer(Config{Secret: "  "})
	require.Error(t, err)
}

func TestIssueAndResolveRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	// Resolution checks expiry against the wall clock, so the token must be
	// issued relative to it.
	now := time.Now()

	signed, expiresAt, err := issuer.Issue(OwnerSubject(snowflake.ID(42)), now)
	require.NoError(t, err)
	require.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	subject, err := issuer.Resolve(signed)
	require.NoError(t, err)

	kind, id, err := ParseSubject(subject)
	require.NoError(t, err)
	require.Equal(t, KindOwner, kind)
	require.Equal(t, snowflake.ID(42), id)
}

func TestResolveExpiredToken(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)

	signed, _, err := issuer.Issue(OwnerSubject(snowflake.ID(1)), issuedAt)
	require.NoError(t, err)

	_, err = issuer.Resolve(signed)
	require.Error(t, err)
}

func TestResolveRejectsForeignSecret(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	other, err := NewIssuer(Config{Secret: "other-secret", TTL: time.Hour})
	require.NoError(t, err)

	signed, _, err := other.Issue(OwnerSubject(snowflake.ID(1)), time.Now())
	require.NoError(t, err)

	_, err = issuer.Resolve(signed)
	require.Error(t, err)
}

func TestParseSubjectEmployeePrefix(t *testing.T) {
	kind, id, err := ParseSubject(EmployeeSubject(snowflake.ID(99)))
	require.NoError(t, err)
	require.Equal(t, KindEmployee, kind)
	require.Equal(t, snowflake.ID(99), id)
}

func TestParseSubjectMalformed(t *testing.T) {
	for _, sub := range []string{"", "abc", "emp:", "emp:abc"} {
		_, _, err := ParseSubject(sub)
		require.Error(t, err, "subject %q", sub)
	}
}

func TestDefaultTTL(t *testing.T) {
	issuer := newTestIssuer(t, 0)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, expiresAt, err := issuer.Issue(OwnerSubject(snowflake.ID(7)), now)
	require.NoError(t, err)
	require.Equal(t, now.Add(24*time.Hour), expiresAt)
}
