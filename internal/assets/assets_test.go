package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolverPath(t *testing.T) {
	tests := []struct {
		name string
		base string
		in   string
		want string
	}{
		{"default base", "", "puzzles/easy/fire.jpg", "/puzzles/easy/fire.jpg"},
		{"sub path base", "/puzzle-quest/", "puzzles/hard/love.jpg", "/puzzle-quest/puzzles/hard/love.jpg"},
		{"base without trailing slash", "/game", "x.jpg", "/game/x.jpg"},
		{"dot prefix", "/", "./x.jpg", "/x.jpg"},
		{"cdn base", "https://cdn.example.com/q", "puzzles/easy/sun.jpg", "https://cdn.example.com/q/puzzles/easy/sun.jpg"},
		{"absolute url untouched", "/game", "https://example.com/a.png", "https://example.com/a.png"},
		{"rooted path untouched", "/game", "/img/a.png", "/img/a.png"},
		{"data url untouched", "/", "data:image/png;base64,AAA", "data:image/png;base64,AAA"},
		{"empty stays empty", "/", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewResolver(tt.base).Path(tt.in))
		})
	}
}

func TestZeroResolverUsesDefaultBase(t *testing.T) {
	assert.Equal(t, "/a.jpg", Resolver{}.Path("a.jpg"))
}
