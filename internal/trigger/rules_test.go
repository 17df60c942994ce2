package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantPrompt string
		wantOK     bool
	}{
		{"command", "/zarasprite where are diamonds?", "where are diamonds?", true},
		{"command upper case", "/ZaraSprite help me", "help me", true},
		{"command without argument", "/zarasprite   ", "", false},
		{"mention", "hey Sprite, you there?", "hey Sprite, you there?", true},
		{"mention lower case", "sprite", "sprite", true},
		{"word containing sprite", "spritesheet looks good", "", false},
		{"command not at start", "try /zarasprite hello", "", false},
		{"unrelated", "hello world", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, ok := Match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrompt, prompt)
		})
	}
}
