package vscode

import (
	"sort"
	"strings"
)

// TextDocument is an immutable snapshot of a file's text with line-based
// addressing. It does not track on-disk changes; re-open to refresh.
type TextDocument struct {
	uri   URI
	lines []string
}

// NewTextDocument constructs a document from raw text.
func NewTextDocument(uri URI, text string) *TextDocument {
	return &TextDocument{uri: uri, lines: strings.Split(text, "\n")}
}

// URI returns the document's resource identifier.
func (d *TextDocument) URI() URI { return d.uri }

// LineCount returns the number of lines.
func (d *TextDocument) LineCount() int { return len(d.lines) }

// LineAt returns the text of the given zero-based line. Out-of-range lines
// return the empty string.
func (d *TextDocument) LineAt(line int) string {
	if line < 0 || line >= len(d.lines) {
		return ""
	}
	return d.lines[line]
}

// Text returns the full document text.
func (d *TextDocument) Text() string {
	return strings.Join(d.lines, "\n")
}

// TextInRange returns the text covered by r, clamped to the document.
func (d *TextDocument) TextInRange(r Range) string {
	if len(d.lines) == 0 {
		return ""
	}
	start := d.clamp(r.Start)
	end := d.clamp(r.End)
	if start.Line == end.Line {
		return d.lines[start.Line][start.Character:end.Character]
	}
	var b strings.Builder
	b.WriteString(d.lines[start.Line][start.Character:])
	for line := start.Line + 1; line < end.Line; line++ {
		b.WriteString("\n")
		b.WriteString(d.lines[line])
	}
	b.WriteString("\n")
	b.WriteString(d.lines[end.Line][:end.Character])
	return b.String()
}

// WithEdits returns a new document with edits applied. Edits are applied
// back to front so earlier ranges stay valid.
func (d *TextDocument) WithEdits(edits []TextEdit) *TextDocument {
	sorted := append([]TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[j].Range.Start.IsBefore(sorted[i].Range.Start)
	})
	text := d.Text()
	for _, edit := range sorted {
		start := d.offsetAt(edit.Range.Start)
		end := d.offsetAt(edit.Range.End)
		if start > len(text) {
			start = len(text)
		}
		if end > len(text) {
			end = len(text)
		}
		text = text[:start] + edit.NewText + text[end:]
	}
	return NewTextDocument(d.uri, text)
}

func (d *TextDocument) clamp(p Position) Position {
	line := p.Line
	if line >= len(d.lines) {
		line = len(d.lines) - 1
	}
	character := p.Character
	if character > len(d.lines[line]) {
		character = len(d.lines[line])
	}
	return Position{Line: line, Character: character}
}

func (d *TextDocument) offsetAt(p Position) int {
	clamped := d.clamp(p)
	offset := 0
	for line := 0; line < clamped.Line; line++ {
		offset += len(d.lines[line]) + 1
	}
	return offset + clamped.Character
}
