package agent

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxUtterance bounds a single utterance in bytes.
const DefaultMaxUtterance = 4096

var (
	ErrUtteranceTooLarge = errors.New("utterance exceeds maximum allowed size")
	ErrInvalidUTF8       = errors.New("utterance contains invalid UTF-8 sequences")
)

// Sanitize rejects oversized or malformed utterances and strips control
// characters. Tabs and line breaks become spaces so an utterance stays on
// one transcript line. The result is trimmed.
func Sanitize(text string, limit int) (string, error) {
	if limit > 0 && len(text) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrUtteranceTooLarge, len(text), limit)
	}
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(text, unicode.IsControl) < 0 {
		return strings.TrimSpace(text), nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// rejected reports whether err came from Sanitize.
func rejected(err error) bool {
	return errors.Is(err, ErrUtteranceTooLarge) || errors.Is(err, ErrInvalidUTF8)
}
