package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLogMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "password value redacted",
			in:   "login failed: password=hunter2 for user bob",
			want: "login failed: password=[REDACTED] for user bob",
		},
		{
			name: "bearer token redacted",
			in:   "rejected header bearer eyJhbGciOiJIUzI1NiJ9.payload.sig",
			want: "rejected header bearer=[REDACTED]",
		},
		{
			name: "secret key redacted",
			in:   "bad config: secret: abc123",
			want: "bad config: secret=[REDACTED]",
		},
		{
			name: "plain message untouched",
			in:   "client not found",
			want: "client not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeLogMessage(tt.in))
		})
	}
}
