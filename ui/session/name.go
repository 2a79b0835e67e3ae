package session

import (
	"unicode"

	"snake-deluxe/game/types"
)

// NameBuffer holds up to MaxNameLength uppercase letters
type NameBuffer struct {
	runes []rune
}

// Reset replaces the buffer with name, keeping only what Add would accept.
// The anonymous placeholder starts an empty buffer.
func (b *NameBuffer) Reset(name string) {
	b.runes = b.runes[:0]
	if name == types.DefaultPlayerName {
		return
	}
	for _, r := range name {
		b.Add(r)
	}
}

func (b *NameBuffer) Add(r rune) bool {
	if !unicode.IsLetter(r) || len(b.runes) >= types.MaxNameLength {
		return false
	}
	b.runes = append(b.runes, unicode.ToUpper(r))
	return true
}

func (b *NameBuffer) Backspace() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

func (b *NameBuffer) String() string {
	return string(b.runes)
}
