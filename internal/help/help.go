// Package help opens the external user guide in the default browser.
package help

import (
	"context"
	"fmt"

	"github.com/diewo77/computer-store/gate"
	"github.com/diewo77/computer-store/internal/services"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
)

// OpenError carries the URL so the user can open it by hand.
type OpenError struct {
	URL string
	Err error
}

func (e *OpenError) Error() string { return fmt.Sprintf("open help %s: %v", e.URL, e.Err) }
func (e *OpenError) Unwrap() error { return e.Err }

type Opener struct {
	url  string
	auth services.Authorizer
	open func(url string) error
}

func NewOpener(url string, auth services.Authorizer) *Opener {
	return &Opener{url: url, auth: auth, open: browser.OpenURL}
}

// WithOpenFunc replaces the browser launcher.
func (o *Opener) WithOpenFunc(fn func(url string) error) *Opener {
	o.open = fn
	return o
}

// URL is the help page address.
func (o *Opener) URL() string { return o.url }

func (o *Opener) Open(ctx context.Context) error {
	if err := o.auth.Authorize(ctx, gate.ActionView, session.ResourceHelp); err != nil {
		return err
	}
	if err := o.open(o.url); err != nil {
		logrus.WithError(err).WithField("url", o.url).Warn("help: browser did not open")
		return &OpenError{URL: o.url, Err: err}
	}
	return nil
}
