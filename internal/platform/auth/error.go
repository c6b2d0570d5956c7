package auth

import "fmt"

// ReauthPath is where a user restarts the DrChrono authorization flow.
const ReauthPath = "/auth/connect"

// Error signals that a request cannot proceed without the user
// re-authorizing against DrChrono: no credential on file, a rejected
// refresh, or a refresh that failed in transit. The three cases are
// deliberately collapsed into one type; callers always answer with a
// redirect to ReauthPath.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }
