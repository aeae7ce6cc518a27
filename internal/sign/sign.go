package sign

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrNoSecret = errors.New("sign: missing shared secret")

// Signer derives request signatures from a canonicalized parameter set
// and a shared secret. The platform's scheme is concatenate-then-hash,
// not an HMAC: sorted key=value pairs joined with "&", secret appended
// as a suffix, SHA-256, lowercase hex. The order is load-bearing for
// the verifying server.
type Signer struct {
	apiKey string
	secret string
	now    func() time.Time
}

func New(apiKey, secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Signer{apiKey: apiKey, secret: secret, now: time.Now}, nil
}

// Canonicalize sorts the keys lexicographically and joins key=value
// pairs with "&". The signature itself must never be part of the input.
func Canonicalize(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

func (s *Signer) Sign(params map[string]string) string {
	sum := sha256.Sum256([]byte(Canonicalize(params) + s.secret))
	return hex.EncodeToString(sum[:])
}

// SignedParams copies params, injects the api key and a fresh unix
// timestamp, then computes the signature over everything and appends it
// last under the "signature" key.
func (s *Signer) SignedParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+3)
	for k, v := range params {
		out[k] = v
	}
	out["api_key"] = s.apiKey
	out["timestamp"] = strconv.FormatInt(s.now().Unix(), 10)
	sig := s.Sign(out)
	out["signature"] = sig
	return out
}
