package client

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourneighborhoodchef/dymgr/internal/headers"
)

// SendOptions carries the per-call request shape. Params go to the
// query string, Form to a urlencoded body. Signed sends get the api
// key, a fresh timestamp and the signature injected into whichever set
// travels with the request (body when present, query otherwise).
type SendOptions struct {
	Params map[string]string
	Form   map[string]string
	Signed bool
}

// Result is a successfully classified 2xx response.
type Result struct {
	Status int
	Body   []byte
}

const bodyExcerptLen = 200

// Markers the platform embeds in soft-block interstitials.
var blockMarkers = [][]byte{
	[]byte("verification required"),
	[]byte("需要验证"),
}

func excerpt(body []byte) string {
	s := string(body)
	if len(s) > bodyExcerptLen {
		s = s[:bodyExcerptLen] + "..."
	}
	return s
}

func hasBlockMarker(body []byte) bool {
	probe := body
	if len(probe) > 4096 {
		probe = probe[:4096]
	}
	probe = bytes.ToLower(probe)
	for _, m := range blockMarkers {
		if bytes.Contains(probe, m) {
			return true
		}
	}
	return false
}

// Send runs one throttled, header-randomized, optionally signed call
// and classifies the response. It suspends while waiting for throttle
// admission; cancelling ctx during the wait leaves the throttle window
// untouched. No classification is ever retried internally.
func (s *Session) Send(ctx context.Context, method, rawurl string, opts SendOptions) (*Result, error) {
	if opts.Signed && s.signer == nil {
		return nil, ErrNoSigner
	}

	if err := s.throttle.Admit(ctx); err != nil {
		return nil, err
	}

	params := opts.Params
	form := opts.Form
	if opts.Signed {
		if len(form) > 0 {
			form = s.signer.SignedParams(form)
		} else {
			params = s.signer.SignedParams(params)
		}
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if len(form) > 0 {
		enc := url.Values{}
		for k, v := range form {
			enc.Set(k, v)
		}
		body = strings.NewReader(enc.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	reqID := uuid.NewString()
	req.Header = headers.Build()
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Debug("transport fault",
			zap.String("request_id", reqID), zap.String("url", u.Host), zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return s.classify(resp.StatusCode, raw, reqID)
}

func (s *Session) classify(status int, body []byte, reqID string) (*Result, error) {
	switch {
	case status == http.StatusForbidden || hasBlockMarker(body):
		s.log.Warn("soft block detected",
			zap.String("request_id", reqID), zap.Int("status", status))
		return nil, &SoftBlockError{Status: status, Reason: excerpt(body)}
	case status < 200 || status >= 300:
		s.log.Debug("platform error",
			zap.String("request_id", reqID), zap.Int("status", status))
		return nil, &HardError{Status: status, Body: excerpt(body)}
	default:
		return &Result{Status: status, Body: body}, nil
	}
}
