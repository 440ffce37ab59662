package vscode

// Selection is a Range with a direction: Anchor is where the selection
// started, Active is where the cursor is.
type Selection struct {
	Range
	Anchor Position
	Active Position
}

// NewSelection constructs a Selection from anchor to active.
func NewSelection(anchor, active Position) Selection {
	return Selection{
		Range:  NewRange(anchor, active),
		Anchor: anchor,
		Active: active,
	}
}

// IsReversed reports whether the active end precedes the anchor.
func (s Selection) IsReversed() bool {
	return s.Active.IsBefore(s.Anchor)
}
