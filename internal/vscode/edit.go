package vscode

// TextEdit describes a single replacement of a document range with new text.
type TextEdit struct {
	Range   Range
	NewText string
}

// ReplaceEdit constructs an edit replacing a range.
func ReplaceEdit(r Range, newText string) TextEdit {
	return TextEdit{Range: r, NewText: newText}
}

// InsertEdit constructs an edit inserting text at a position.
func InsertEdit(at Position, newText string) TextEdit {
	return TextEdit{Range: Range{Start: at, End: at}, NewText: newText}
}

// DeleteEdit constructs an edit removing a range.
func DeleteEdit(r Range) TextEdit {
	return TextEdit{Range: r}
}

// WorkspaceEdit collects text edits per resource. Entries preserve the order
// in which resources were first touched.
type WorkspaceEdit struct {
	order []URI
	edits map[string][]TextEdit
}

// NewWorkspaceEdit constructs an empty WorkspaceEdit.
func NewWorkspaceEdit() *WorkspaceEdit {
	return &WorkspaceEdit{edits: make(map[string][]TextEdit)}
}

// Set replaces all edits recorded for uri.
func (w *WorkspaceEdit) Set(uri URI, edits []TextEdit) {
	key := uri.String()
	if _, seen := w.edits[key]; !seen {
		w.order = append(w.order, uri)
	}
	w.edits[key] = append([]TextEdit(nil), edits...)
}

// Replace appends a replacement edit for uri.
func (w *WorkspaceEdit) Replace(uri URI, r Range, newText string) {
	w.append(uri, ReplaceEdit(r, newText))
}

// Insert appends an insertion edit for uri.
func (w *WorkspaceEdit) Insert(uri URI, at Position, newText string) {
	w.append(uri, InsertEdit(at, newText))
}

// Delete appends a deletion edit for uri.
func (w *WorkspaceEdit) Delete(uri URI, r Range) {
	w.append(uri, DeleteEdit(r))
}

func (w *WorkspaceEdit) append(uri URI, edit TextEdit) {
	key := uri.String()
	if _, seen := w.edits[key]; !seen {
		w.order = append(w.order, uri)
	}
	w.edits[key] = append(w.edits[key], edit)
}

// Size returns the number of touched resources.
func (w *WorkspaceEdit) Size() int { return len(w.order) }

// WorkspaceEditEntry pairs a resource with its edits.
type WorkspaceEditEntry struct {
	URI   URI
	Edits []TextEdit
}

// Entries returns the recorded edits in first-touch order.
func (w *WorkspaceEdit) Entries() []WorkspaceEditEntry {
	out := make([]WorkspaceEditEntry, 0, len(w.order))
	for _, uri := range w.order {
		out = append(out, WorkspaceEditEntry{URI: uri, Edits: w.edits[uri.String()]})
	}
	return out
}
