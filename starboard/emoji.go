package starboard

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Matches a custom emoji either as the bare "name:id" the gateway reports or
// as the "<:name:id>" mention a user pastes into a command option.
var customEmojiPattern = regexp.MustCompile(`^(?:<a?:)?(\w+):(\d+)>?$`)

// NormalizeEmoji validates a trigger emoji and returns it in the form reaction
// events carry: a single unicode emoji stays as-is, a custom emoji mention is
// reduced to "name:id". Anything else, plain text included, is rejected so a
// board never gets a trigger no reaction can match.
func NormalizeEmoji(input string) (string, bool) {
	if m := customEmojiPattern.FindStringSubmatch(input); m != nil {
		return m[1] + ":" + m[2], true
	}
	if uniseg.GraphemeClusterCount(input) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(input)
	if r <= unicode.MaxASCII || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return "", false
	}
	return input, true
}
