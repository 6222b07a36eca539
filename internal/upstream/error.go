package upstream

import "fmt"

// AuthError reports a failed credential acquisition against the token
// endpoint.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s (%v)", e.Message, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("authentication failed: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a non-success status or transport failure from a
// search, details, or download call. Op names the attempted operation.
type UpstreamError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
