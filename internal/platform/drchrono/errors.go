package drchrono

import (
	"errors"
	"fmt"
)

// RemoteError is a non-2xx response or transport failure from the DrChrono
// API. StatusCode is zero when the request never produced a response.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("drchrono: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("drchrono: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// StatusIn reports whether err is a RemoteError with one of the given
// HTTP status codes.
func StatusIn(err error, codes ...int) bool {
	var re *RemoteError
	if !errors.As(err, &re) {
		return false
	}
	for _, code := range codes {
		if re.StatusCode == code {
			return true
		}
	}
	return false
}
