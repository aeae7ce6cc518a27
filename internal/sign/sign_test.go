package sign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	got := Canonicalize(map[string]string{
		"timestamp":  "1000",
		"account_id": "42",
		"api_key":    "k",
	})
	assert.Equal(t, "account_id=42&api_key=k&timestamp=1000", got)
}

func TestSignKnownVector(t *testing.T) {
	s, err := New("k", "s3cr3t")
	require.NoError(t, err)

	params := map[string]string{
		"account_id": "42",
		"api_key":    "k",
		"timestamp":  "1000",
	}

	// SHA-256 of "account_id=42&api_key=k&timestamp=1000" + "s3cr3t".
	const want = "be67ca1ab79aaaa187082d46ed30c110c91ebc43a5167d373f4065434da44e21"
	assert.Equal(t, want, s.Sign(params))

	// Deterministic.
	assert.Equal(t, want, s.Sign(params))

	// Any single value change changes the signature.
	params["account_id"] = "43"
	assert.Equal(t,
		"7ce638c9c5fa6fb4ee8692aa4d34cd82a1446d7df56e7e9e01a187ef80c62d67",
		s.Sign(params))
}

func TestSignedParams(t *testing.T) {
	s, err := New("k", "s3cr3t")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Unix(1000, 0) }

	out := s.SignedParams(map[string]string{"account_id": "42"})

	assert.Equal(t, "42", out["account_id"])
	assert.Equal(t, "k", out["api_key"])
	assert.Equal(t, "1000", out["timestamp"])

	// Signature covers everything but itself.
	assert.Equal(t,
		"be67ca1ab79aaaa187082d46ed30c110c91ebc43a5167d373f4065434da44e21",
		out["signature"])
}

func TestSignedParamsDoesNotMutateInput(t *testing.T) {
	s, err := New("k", "s3cr3t")
	require.NoError(t, err)

	in := map[string]string{"account_id": "42"}
	_ = s.SignedParams(in)
	assert.Len(t, in, 1)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("k", "")
	assert.ErrorIs(t, err, ErrNoSecret)
}
