package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStreamInterval(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", DefaultStreamInterval},
		{"10s", 10 * time.Second},
		{"3", 3 * time.Second},
		{"500ms", MinStreamInterval},
		{"1", MinStreamInterval},
		{"soon", DefaultStreamInterval},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseStreamInterval(tt.in), tt.in)
	}
}
