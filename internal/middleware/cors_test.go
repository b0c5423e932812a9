package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowOrigin(t *testing.T) {
	allowed := []string{"https://reunion.example.com", "http://localhost:5173"}

	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    string
	}{
		{"no origin header", "", allowed, ""},
		{"exact match", "https://reunion.example.com", allowed, "https://reunion.example.com"},
		{"case insensitive match", "HTTPS://Reunion.Example.Com", allowed, "HTTPS://Reunion.Example.Com"},
		{"local dev origin", "http://localhost:5173", allowed, "http://localhost:5173"},
		{"unlisted origin", "https://evil.example.com", allowed, ""},
		{"wildcard reflects origin", "https://anywhere.example.com", []string{"*"}, "https://anywhere.example.com"},
		{"empty list reflects origin", "https://anywhere.example.com", nil, "https://anywhere.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allowOrigin(tt.origin, tt.allowed))
		})
	}
}
