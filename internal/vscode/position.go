package vscode

import "fmt"

// Position is a zero-based line/character coordinate in a document.
// Positions are immutable and totally ordered, line-major.
type Position struct {
	Line      int
	Character int
}

// NewPosition constructs a Position. Negative components are a programming
// error and panic immediately rather than producing a corrupt coordinate.
func NewPosition(line, character int) Position {
	if line < 0 || character < 0 {
		panic(fmt.Sprintf("vscode: invalid position (%d, %d)", line, character))
	}
	return Position{Line: line, Character: character}
}

// Compare orders two positions: -1 if p precedes other, 0 if equal, 1 after.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Character < other.Character:
		return -1
	case p.Character > other.Character:
		return 1
	default:
		return 0
	}
}

// IsBefore reports whether p strictly precedes other.
func (p Position) IsBefore(other Position) bool { return p.Compare(other) < 0 }

// IsBeforeOrEqual reports whether p precedes or equals other.
func (p Position) IsBeforeOrEqual(other Position) bool { return p.Compare(other) <= 0 }

// IsAfter reports whether p strictly follows other.
func (p Position) IsAfter(other Position) bool { return p.Compare(other) > 0 }

// IsAfterOrEqual reports whether p follows or equals other.
func (p Position) IsAfterOrEqual(other Position) bool { return p.Compare(other) >= 0 }

// IsEqual reports whether both components match.
func (p Position) IsEqual(other Position) bool { return p.Compare(other) == 0 }

// Translate returns a new position shifted by the given deltas. The result
// is clamped at zero rather than panicking, matching the editor's leniency
// for relative movement.
func (p Position) Translate(lineDelta, characterDelta int) Position {
	line := p.Line + lineDelta
	if line < 0 {
		line = 0
	}
	character := p.Character + characterDelta
	if character < 0 {
		character = 0
	}
	return Position{Line: line, Character: character}
}

// With returns a copy with the given line and character. Negative arguments
// keep the receiver's value.
func (p Position) With(line, character int) Position {
	out := p
	if line >= 0 {
		out.Line = line
	}
	if character >= 0 {
		out.Character = character
	}
	return out
}
