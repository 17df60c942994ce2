// Package trigger polls recorded chat messages and answers the ones addressed to the bot.
package trigger

import (
	"regexp"
	"strings"
)

var (
	commandPattern = regexp.MustCompile(`(?i)^/zarasprite\s+(.*)`)
	mentionPattern = regexp.MustCompile(`(?i)\bsprite\b`)
)

// reports whether text should get a reply and the prompt to send to the model.
// the command form uses its argument as the prompt, a mention uses the whole text.
func Match(text string) (string, bool) {
	text = strings.TrimSpace(text)

	if m := commandPattern.FindStringSubmatch(text); m != nil {
		prompt := strings.TrimSpace(m[1])
		if prompt == "" {
			return "", false
		}
		return prompt, true
	}

	if mentionPattern.MatchString(text) {
		return text, true
	}

	return "", false
}
