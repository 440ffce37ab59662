// Package vscode re-implements the slice of the VS Code extension API that a
// headless extension host needs: value types, eventing, persistent state,
// the ExtensionContext, and the capability façades an extension touches
// during activation. The real editor process is replaced by whatever
// front-end attaches to the host bridge.
package vscode

import (
	"fmt"
	"net/url"
	"strings"
)

// URI identifies a resource by scheme, authority, path, query and fragment.
// URI values are immutable; derive new ones with With.
type URI struct {
	Scheme    string
	Authority string
	Path      string
	Query     string
	Fragment  string
}

// FileURI constructs a file-scheme URI for a local path.
func FileURI(path string) URI {
	return URI{Scheme: "file", Path: path}
}

// ParseURI parses a URI string into its components.
func ParseURI(raw string) (URI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URI{}, fmt.Errorf("parse uri %q: %w", raw, err)
	}
	if u.Scheme == "" {
		return URI{}, fmt.Errorf("parse uri %q: missing scheme", raw)
	}
	return URI{
		Scheme:    u.Scheme,
		Authority: u.Host,
		Path:      u.Path,
		Query:     u.RawQuery,
		Fragment:  u.Fragment,
	}, nil
}

// FSPath returns the local filesystem path for file-scheme URIs. For other
// schemes it returns the path component unchanged.
func (u URI) FSPath() string {
	return u.Path
}

// IsFile reports whether the URI uses the file scheme.
func (u URI) IsFile() bool {
	return u.Scheme == "file"
}

// URIChange describes the components With should replace. Nil fields keep
// the receiver's value.
type URIChange struct {
	Scheme    *string
	Authority *string
	Path      *string
	Query     *string
	Fragment  *string
}

// With returns a copy of the URI with the given components replaced.
func (u URI) With(change URIChange) URI {
	out := u
	if change.Scheme != nil {
		out.Scheme = *change.Scheme
	}
	if change.Authority != nil {
		out.Authority = *change.Authority
	}
	if change.Path != nil {
		out.Path = *change.Path
	}
	if change.Query != nil {
		out.Query = *change.Query
	}
	if change.Fragment != nil {
		out.Fragment = *change.Fragment
	}
	return out
}

// String renders the URI in scheme://authority/path?query#fragment form.
func (u URI) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Authority)
	if u.Path != "" && !strings.HasPrefix(u.Path, "/") {
		b.WriteString("/")
	}
	b.WriteString(u.Path)
	if u.Query != "" {
		b.WriteString("?")
		b.WriteString(u.Query)
	}
	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.Fragment)
	}
	return b.String()
}
