package client

import (
	"fmt"
	"net/url"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	"github.com/yourneighborhoodchef/dymgr/internal/sign"
	"github.com/yourneighborhoodchef/dymgr/internal/throttle"
)

const defaultSite = "https://www.douyin.com"

// Config seeds one Session. Proxy and cookies are per-instance
// resources; nothing here is shared between sessions.
type Config struct {
	Proxy          string
	SeedCookies    map[string]string
	SiteURL        string // site the seed cookies belong to, defaults to the platform
	TimeoutSeconds int
	MinInterval    time.Duration
	Quota          int
	Window         time.Duration
	Signer         *sign.Signer // nil leaves signed sends unavailable
	Logger         *zap.Logger
}

// Session owns one TLS-fingerprinted HTTP client with its cookie jar,
// proxy, throttle and signer. Safe for concurrent use; all sends on one
// Session share one throttle window.
type Session struct {
	http     tls_client.HttpClient
	throttle *throttle.Throttle
	signer   *sign.Signer
	site     *url.URL
	log      *zap.Logger
}

func New(cfg Config) (*Session, error) {
	siteURL := cfg.SiteURL
	if siteURL == "" {
		siteURL = defaultSite
	}
	site, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("parse site url: %w", err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	jar := tls_client.NewCookieJar()
	if len(cfg.SeedCookies) > 0 {
		cookies := make([]*http.Cookie, 0, len(cfg.SeedCookies))
		for name, value := range cfg.SeedCookies {
			cookies = append(cookies, &http.Cookie{Name: name, Value: value})
		}
		jar.SetCookies(site, cookies)
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeout),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
		tls_client.WithCookieJar(jar),
	}
	if cfg.Proxy != "" {
		options = append(options, tls_client.WithProxyUrl(cfg.Proxy))
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		http:     httpClient,
		throttle: throttle.New(cfg.MinInterval, cfg.Quota, cfg.Window),
		signer:   cfg.Signer,
		site:     site,
		log:      logger,
	}, nil
}

// Cookies exposes the jar contents for the seed site so callers can
// persist session state across runs if they want to.
func (s *Session) Cookies() []*http.Cookie {
	return s.http.GetCookies(s.site)
}

// ThrottleStats reports the current window's admission count and quota.
func (s *Session) ThrottleStats() (count, quota int) {
	c, q, _ := s.throttle.Stats()
	return c, q
}
