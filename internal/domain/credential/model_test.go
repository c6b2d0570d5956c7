package credential

import (
	"testing"
	"time"
)

func TestCredentialIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"nil expiry is expired", nil, true},
		{"future expiry", timePtr(now.Add(time.Hour)), false},
		{"past expiry", timePtr(now.Add(-time.Minute)), true},
		{"exactly now is expired", timePtr(now), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Credential{ExpiresAt: tt.expiresAt}
			if got := c.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
