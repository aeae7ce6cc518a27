package monitor

// State is the coarse account condition derived from one probe.
type State string

const (
	StateHealthy    State = "healthy"
	StateRestricted State = "restricted"
	StateError      State = "error"
)

// Health is the result of a single probe. Built fresh per check, never
// cached.
type Health struct {
	State     State  `json:"state"`
	Followers int64  `json:"followers,omitempty"`
	Videos    int64  `json:"videos,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// StatusMessage is the JSON line the probe loop emits per check.
type StatusMessage struct {
	Account   string  `json:"account"`
	State     State   `json:"state"`
	Followers int64   `json:"followers"`
	Videos    int64   `json:"videos"`
	Reason    string  `json:"reason,omitempty"`
	LastCheck float64 `json:"last_check"`
	Sent      int     `json:"window_sent"`
	Quota     int     `json:"window_quota"`
}
