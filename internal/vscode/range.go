package vscode

// Range is an ordered pair of positions. Callers are expected to keep
// Start <= End; the constructor normalizes but methods do not re-check.
type Range struct {
	Start Position
	End   Position
}

// NewRange constructs a Range, swapping the endpoints if given in reverse.
func NewRange(start, end Position) Range {
	if end.IsBefore(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// IsEmpty reports whether the range spans no characters.
func (r Range) IsEmpty() bool { return r.Start.IsEqual(r.End) }

// IsSingleLine reports whether both endpoints share a line.
func (r Range) IsSingleLine() bool { return r.Start.Line == r.End.Line }

// ContainsPosition reports whether p lies within the range, inclusive.
func (r Range) ContainsPosition(p Position) bool {
	return r.Start.IsBeforeOrEqual(p) && r.End.IsAfterOrEqual(p)
}

// ContainsRange reports whether other lies entirely within the range.
func (r Range) ContainsRange(other Range) bool {
	return r.ContainsPosition(other.Start) && r.ContainsPosition(other.End)
}

// IsEqual reports whether both endpoints match.
func (r Range) IsEqual(other Range) bool {
	return r.Start.IsEqual(other.Start) && r.End.IsEqual(other.End)
}

// Intersection returns the overlap of two ranges. ok is false when the
// ranges are disjoint.
func (r Range) Intersection(other Range) (Range, bool) {
	start := r.Start
	if other.Start.IsAfter(start) {
		start = other.Start
	}
	end := r.End
	if other.End.IsBefore(end) {
		end = other.End
	}
	if start.IsAfter(end) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// Union returns the smallest range covering both ranges.
func (r Range) Union(other Range) Range {
	start := r.Start
	if other.Start.IsBefore(start) {
		start = other.Start
	}
	end := r.End
	if other.End.IsAfter(end) {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// With returns a copy with the given endpoints replaced. Nil arguments keep
// the receiver's value.
func (r Range) With(start, end *Position) Range {
	out := r
	if start != nil {
		out.Start = *start
	}
	if end != nil {
		out.End = *end
	}
	return out
}
