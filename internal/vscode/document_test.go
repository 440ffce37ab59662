package vscode

import "testing"

func docOf(text string) *TextDocument {
	return NewTextDocument(FileURI("/ws/doc.txt"), text)
}

func rng(startLine, startChar, endLine, endChar int) Range {
	return NewRange(NewPosition(startLine, startChar), NewPosition(endLine, endChar))
}

func TestDocumentLines(t *testing.T) {
	d := docOf("alpha\nbeta\ngamma")
	if d.LineCount() != 3 {
		t.Fatalf("LineCount = %d", d.LineCount())
	}
	if d.LineAt(1) != "beta" {
		t.Fatalf("LineAt(1) = %q", d.LineAt(1))
	}
	if d.LineAt(-1) != "" || d.LineAt(99) != "" {
		t.Fatal("out-of-range lines should be empty")
	}
	if d.Text() != "alpha\nbeta\ngamma" {
		t.Fatalf("Text = %q", d.Text())
	}
}

func TestDocumentTextInRange(t *testing.T) {
	d := docOf("alpha\nbeta\ngamma")
	tests := []struct {
		name string
		r    Range
		want string
	}{
		{"within one line", rng(0, 1, 0, 4), "lph"},
		{"across two lines", rng(0, 3, 1, 2), "ha\nbe"},
		{"across three lines", rng(0, 4, 2, 3), "a\nbeta\ngam"},
		{"clamped past end", rng(2, 0, 9, 9), "gamma"},
		{"empty", rng(1, 2, 1, 2), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.TextInRange(tt.r); got != tt.want {
				t.Fatalf("TextInRange = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentWithEdits(t *testing.T) {
	d := docOf("alpha\nbeta\ngamma")
	edited := d.WithEdits([]TextEdit{
		ReplaceEdit(rng(0, 0, 0, 5), "first"),
		ReplaceEdit(rng(2, 0, 2, 5), "third"),
	})
	if edited.Text() != "first\nbeta\nthird" {
		t.Fatalf("edited = %q", edited.Text())
	}
	// The source document is unchanged.
	if d.Text() != "alpha\nbeta\ngamma" {
		t.Fatalf("source mutated: %q", d.Text())
	}
}

func TestDocumentEditOrderIndependence(t *testing.T) {
	d := docOf("one two three")
	edits := []TextEdit{
		ReplaceEdit(rng(0, 8, 0, 13), "3"),
		ReplaceEdit(rng(0, 0, 0, 3), "1"),
	}
	forward := d.WithEdits(edits)
	backward := d.WithEdits([]TextEdit{edits[1], edits[0]})
	want := "1 two 3"
	if forward.Text() != want || backward.Text() != want {
		t.Fatalf("forward = %q, backward = %q, want %q", forward.Text(), backward.Text(), want)
	}
}

func TestDocumentInsertAndDelete(t *testing.T) {
	d := docOf("hello world")
	inserted := d.WithEdits([]TextEdit{InsertEdit(NewPosition(0, 5), ",")})
	if inserted.Text() != "hello, world" {
		t.Fatalf("insert = %q", inserted.Text())
	}
	deleted := d.WithEdits([]TextEdit{DeleteEdit(rng(0, 5, 0, 11))})
	if deleted.Text() != "hello" {
		t.Fatalf("delete = %q", deleted.Text())
	}
}
