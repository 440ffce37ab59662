package ipc

import (
	"net/url"
	"testing"
)

func TestAttachURLEscapesToken(t *testing.T) {
	const base = "ws://127.0.0.1:7171/attach"

	raw := "sec+ret/va lue=&#frag"
	dialURL, err := attachURL(base, raw)
	if err != nil {
		t.Fatalf("attachURL: %v", err)
	}
	parsed, err := url.Parse(dialURL)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}
	// The token survives the round trip exactly as given.
	if got := parsed.Query().Get("token"); got != raw {
		t.Fatalf("token = %q, want %q", got, raw)
	}
	if parsed.Path != "/attach" {
		t.Fatalf("path = %q", parsed.Path)
	}
}

func TestAttachURLNoToken(t *testing.T) {
	const base = "ws://127.0.0.1:7171/attach"
	dialURL, err := attachURL(base, "")
	if err != nil {
		t.Fatalf("attachURL: %v", err)
	}
	if dialURL != base {
		t.Fatalf("url = %q, want base unchanged", dialURL)
	}
}

func TestAttachURLBadBase(t *testing.T) {
	if _, err := attachURL("ws://bad url with spaces", "token"); err == nil {
		t.Fatal("malformed base url accepted")
	}
}
