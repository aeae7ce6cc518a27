package client

import (
	"errors"
	"fmt"
)

// ErrNoSigner is returned when a signed send is requested on a session
// built without credentials.
var ErrNoSigner = errors.New("client: signed request without signer")

// SoftBlockError means the platform suspects automation. Never retried
// here; the caller decides whether to back off or pause the account.
type SoftBlockError struct {
	Status int
	Reason string
}

func (e *SoftBlockError) Error() string {
	return fmt.Sprintf("soft block (status %d): %s", e.Status, e.Reason)
}

// HardError is any non-2xx response unrelated to automation suspicion.
type HardError struct {
	Status int
	Body   string
}

func (e *HardError) Error() string {
	return fmt.Sprintf("platform error %d: %s", e.Status, e.Body)
}

// NetworkError wraps a transport-level fault (timeout, reset, DNS).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network fault: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
