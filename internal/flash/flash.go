// Package flash carries a one-shot status message from the request that
// redirects to the page that renders it.
//
// A Status travels in a short-lived cookie. The next handler that renders a
// page calls Pop, which reads the cookie and expires it in the same
// response, so the message is shown exactly once.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// CookieName is the cookie holding the pending status.
const CookieName = "status"

// maxAge bounds how long an unread status survives (seconds).
const maxAge = 60

// Kind classifies a status for styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Status is a human-readable message shown on the next rendered page.
type Status struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Success builds a success status.
func Success(text string) Status { return Status{Kind: KindSuccess, Text: text} }

// Error builds an error status.
func Error(text string) Status { return Status{Kind: KindError, Text: text} }

// IsZero reports whether there is nothing to show.
func (s Status) IsZero() bool { return s.Text == "" }

// IsError reports whether the status is an error. Templates use it to pick
// the alert style.
func (s Status) IsError() bool { return s.Kind == KindError }

// Set queues s for the next rendered page. Call it before writing the
// redirect.
func Set(w http.ResponseWriter, s Status) {
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the queued status, if any, and expires the cookie.
// A malformed cookie is discarded and reported as no status.
func Pop(w http.ResponseWriter, r *http.Request) (Status, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Status{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Status{}, false
	}
	var s Status
	if err := json.Unmarshal(raw, &s); err != nil || s.IsZero() {
		return Status{}, false
	}
	return s, true
}
