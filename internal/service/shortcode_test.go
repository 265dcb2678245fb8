package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortcode(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"reel", "https://www.instagram.com/reel/DTQpr8DjlkU/", "DTQpr8DjlkU"},
		{"post", "https://www.instagram.com/p/Abc_12-xyz/", "Abc_12-xyz"},
		{"no trailing slash", "https://www.instagram.com/reel/DTQpr8DjlkU", "DTQpr8DjlkU"},
		{"query string", "https://www.instagram.com/reel/DTQpr8DjlkU/?igsh=abc", "DTQpr8DjlkU"},
		{"tv segment falls back", "https://www.instagram.com/tv/DTQpr8DjlkU/", "unknown"},
		{"profile url falls back", "https://www.instagram.com/somecook/", "unknown"},
		{"empty", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Shortcode(tt.url))
		})
	}
}
