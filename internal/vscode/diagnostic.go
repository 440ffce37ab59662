package vscode

// DiagnosticSeverity mirrors the host editor's severity scale.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is a problem report attached to a document range.
type Diagnostic struct {
	Range    Range
	Message  string
	Severity DiagnosticSeverity
	Source   string
	Code     string
}

// NewDiagnostic constructs a Diagnostic with error severity by default.
func NewDiagnostic(r Range, message string, severity DiagnosticSeverity) Diagnostic {
	return Diagnostic{Range: r, Message: message, Severity: severity}
}

// ThemeColor references a color by theme identifier; resolution happens in
// whatever front-end renders it.
type ThemeColor struct {
	ID string
}

// ThemeIcon references an icon from the host's icon font.
type ThemeIcon struct {
	ID    string
	Color *ThemeColor
}

// NewThemeIcon constructs a ThemeIcon.
func NewThemeIcon(id string) ThemeIcon {
	return ThemeIcon{ID: id}
}
