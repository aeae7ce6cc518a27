package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"go.uber.org/zap"

	"github.com/yourneighborhoodchef/dymgr/internal/client"
)

// Checker probes one account's self-profile endpoint and maps the
// response to a health state. Stateless across calls.
type Checker struct {
	Session    *client.Session
	ProfileURL string
	Account    string
	Signed     bool
	Log        *zap.Logger
}

type profileResponse struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
	User       struct {
		FollowerCount int64 `json:"follower_count"`
		AwemeCount    int64 `json:"aweme_count"`
	} `json:"user"`
}

func NewChecker(session *client.Session, profileURL, account string, signed bool, log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{
		Session:    session,
		ProfileURL: profileURL,
		Account:    account,
		Signed:     signed,
		Log:        log,
	}
}

// CheckHealth runs one probe. Failures come back inside the Health
// value so operator-facing callers always get one of three readable
// states; nothing is retried here.
func (c *Checker) CheckHealth(ctx context.Context) Health {
	res, err := c.Session.Send(ctx, http.MethodGet, c.ProfileURL,
		client.SendOptions{Signed: c.Signed})
	if err != nil {
		var sb *client.SoftBlockError
		if errors.As(err, &sb) {
			c.Log.Warn("account may be flagged",
				zap.String("account", c.Account), zap.Int("status", sb.Status))
			return Health{State: StateError, Reason: "account may be flagged: " + sb.Reason}
		}
		return Health{State: StateError, Reason: err.Error()}
	}

	var profile profileResponse
	if err := json.Unmarshal(res.Body, &profile); err != nil {
		return Health{State: StateError, Reason: "unparseable profile response: " + err.Error()}
	}

	if profile.StatusCode != 0 {
		reason := profile.StatusMsg
		if reason == "" {
			reason = fmt.Sprintf("platform status code %d", profile.StatusCode)
		}
		return Health{State: StateRestricted, Reason: reason}
	}

	return Health{
		State:     StateHealthy,
		Followers: profile.User.FollowerCount,
		Videos:    profile.User.AwemeCount,
	}
}

// Run probes on a fixed interval until ctx is cancelled, emitting one
// JSON status line per check.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		c.publish(c.CheckHealth(ctx))
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Checker) publish(h Health) {
	sent, quota := c.Session.ThrottleStats()
	msg := StatusMessage{
		Account:   c.Account,
		State:     h.State,
		Followers: h.Followers,
		Videos:    h.Videos,
		Reason:    h.Reason,
		LastCheck: float64(time.Now().UnixNano()) / 1e9,
		Sent:      sent,
		Quota:     quota,
	}
	line, err := json.Marshal(msg)
	if err != nil {
		c.Log.Error("serialize status", zap.Error(err))
		return
	}
	fmt.Println(string(line))
}
