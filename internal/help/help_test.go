package help

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/computer-store/gate"
	"github.com/diewo77/computer-store/internal/session"
)

type stubAuth struct{ err error }

func (s stubAuth) Authorize(context.Context, gate.Action, string) error { return s.err }

func TestOpen(t *testing.T) {
	o := NewOpener("https://example.org/help/", stubAuth{})
	var opened string
	o.open = func(url string) error { opened = url; return nil }
	if err := o.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened != "https://example.org/help/" {
		t.Fatalf("unexpected url %q", opened)
	}
}

func TestOpenFailureCarriesURL(t *testing.T) {
	o := NewOpener("https://example.org/help/", stubAuth{})
	o.open = func(string) error { return errors.New("no browser") }
	err := o.Open(context.Background())
	var oerr *OpenError
	if !errors.As(err, &oerr) {
		t.Fatalf("expected OpenError, got %v", err)
	}
	if oerr.URL != o.URL() {
		t.Fatalf("expected url in error, got %q", oerr.URL)
	}
}

func TestOpenRequiresSession(t *testing.T) {
	o := NewOpener("https://example.org/help/", stubAuth{err: session.ErrAuthRequired})
	o.open = func(string) error { t.Fatal("browser must not open while logged out"); return nil }
	if err := o.Open(context.Background()); !errors.Is(err, session.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}
