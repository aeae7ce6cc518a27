package headers

import (
	"fmt"
	"math/rand"
	"strings"

	http "github.com/bogdanfinn/fhttp"
)

// Fixed identity pool spanning the device classes the platform sees in
// organic traffic. Best-effort diversity against coarse fingerprinting,
// not a security boundary.
var uaPool = []string{
	// Desktop Chrome / Windows
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	// Desktop Safari / macOS
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	// Android Chrome
	"Mozilla/5.0 (Linux; Android 13; SM-G991B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
	"Mozilla/5.0 (Linux; Android 12; Pixel 6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Mobile Safari/537.36",
	// iOS Safari
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
}

var langOpts = []string{
	"zh-CN,zh;q=0.9",
	"zh-CN,zh;q=0.9,en;q=0.8",
	"zh-CN,zh-Hans;q=0.9,zh;q=0.8",
}

const (
	referer = "https://www.douyin.com/"
	origin  = "https://www.douyin.com"
)

var headerOrder = []string{
	"Accept",
	"Accept-Language",
	"Accept-Encoding",
	"User-Agent",
	"Sec-CH-UA",
	"Sec-CH-UA-Mobile",
	"Sec-CH-UA-Platform",
	"Sec-Fetch-Site",
	"Sec-Fetch-Mode",
	"Sec-Fetch-Dest",
	"Origin",
	"Referer",
	"X-Request-ID",
	"Priority",
}

func chromeVersion(ua string) string {
	const fallback = "120.0.0.0"
	idx := strings.Index(ua, "Chrome/")
	if idx == -1 {
		return fallback
	}
	rest := ua[idx+7:]
	if j := strings.Index(rest, " "); j != -1 {
		return rest[:j]
	}
	return rest
}

func secCHUA(ua string) string {
	ver := chromeVersion(ua)
	return fmt.Sprintf(
		`"Not:A-Brand";v="24", "Chromium";v="%s", "Google Chrome";v="%s"`,
		ver, ver,
	)
}

func platform(ua string) string {
	switch {
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "iPhone"):
		return "iOS"
	case strings.Contains(ua, "Windows"):
		return "Windows"
	default:
		return "macOS"
	}
}

// Build returns a randomized but plausible request identity. The user
// agent is drawn uniformly from the pool; language and referrer stay
// consistent with the platform's expected traffic.
func Build() http.Header {
	ua := uaPool[rand.Intn(len(uaPool))]

	h := http.Header{}
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", langOpts[rand.Intn(len(langOpts))])
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("User-Agent", ua)
	if strings.Contains(ua, "Chrome/") {
		h.Set("Sec-CH-UA", secCHUA(ua))
		mobile := "?0"
		if strings.Contains(ua, "Mobile") {
			mobile = "?1"
		}
		h.Set("Sec-CH-UA-Mobile", mobile)
		h.Set("Sec-CH-UA-Platform", `"`+platform(ua)+`"`)
	}
	h.Set("Sec-Fetch-Site", "same-site")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Origin", origin)
	h.Set("Referer", referer)
	h.Set("Priority", "u=1,i")

	h[http.HeaderOrderKey] = headerOrder

	return h
}
