package session

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	nicknamePlaceholder = "user"
	nicknameBaseLimit   = 13
	nicknameSuffixMod   = 1_000_000
)

// SuggestNickname derives a fallback nickname from the username and id. The
// result is deterministic when id is non-nil; otherwise rnd supplies the suffix.
func SuggestNickname(username string, id *int64, rnd func(n int) int) string {
	var b strings.Builder
	for _, r := range username {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		base = nicknamePlaceholder
	}
	if len(base) > nicknameBaseLimit {
		base = base[:nicknameBaseLimit]
	}

	var suffix int64
	if id != nil {
		suffix = *id % nicknameSuffixMod
		if suffix < 0 {
			suffix = -suffix
		}
	} else {
		suffix = int64(rnd(nicknameSuffixMod))
	}
	return fmt.Sprintf("%s_%06d", base, suffix)
}
