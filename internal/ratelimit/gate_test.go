package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want Rate
	}{
		{"5-M", Rate{Limit: 5, Window: time.Minute}},
		{"100-H", Rate{Limit: 100, Window: time.Hour}},
		{"2-S", Rate{Limit: 2, Window: time.Second}},
	}

	for _, tt := range tests {
		got, err := ParseRate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseRate("five-per-minute")
	assert.Error(t, err)
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", LoopbackKey},
		{"203.0.113.9", "203.0.113.9"},
		{" 203.0.113.9 , 10.0.0.1", "203.0.113.9"},
		{" , 10.0.0.1", LoopbackKey},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("POST", "/api/generate-ui", nil)
		if tt.header != "" {
			r.Header.Set("X-Forwarded-For", tt.header)
		}

		assert.Equal(t, tt.want, ClientKey(r), "header %q", tt.header)
	}
}
