package handler

// RESPONSE HELPERS:
// Every handler ends in one of three ways:
//   - render a page                     → Renderer.Render
//   - queue a status and redirect       → redirectWithStatus
//   - re-render a form after a failure  → renderFormError
//
// renderFormError is where domain errors from the service layer become HTTP
// status codes. The service layer never sees net/http.

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/student-records/internal/apperror"
	"github.com/sakif/student-records/internal/flash"
)

// Status texts shown to the user.
const (
	MsgRegistered      = "Account created, please log in"
	MsgUsernameTaken   = "Username is already taken"
	MsgLoginSuccessful = "Login successful"
	MsgLogoutSuccess   = "Logout successful"
	MsgStudentAdded    = "Record was successfully added"
	MsgStudentUpdated  = "Record was successfully updated"
	MsgStudentDeleted  = "Record was successfully deleted"
	MsgStudentNotFound = "Student record not found"
)

// redirectWithStatus queues s for the next page and redirects with 303 See
// Other, so a browser follows a POST with a GET.
func redirectWithStatus(w http.ResponseWriter, r *http.Request, to string, s flash.Status) {
	flash.Set(w, s)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// errorStatus maps a domain error to the HTTP code and status message used
// when re-rendering a form. ok is false for errors that aren't a user
// mistake; the caller answers those with a 500.
//
// ERROR MAPPING:
//
//	ErrValidation   → 422 + the validation message
//	ErrConflict     → 409 + "Username is already taken"
//	ErrUnauthorized → 401 + the message (always "Login failed")
func errorStatus(err error) (code int, status flash.Status, ok bool) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, flash.Status{}, false
	}

	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusUnprocessableEntity, flash.Error(appErr.Message), true
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, flash.Error(MsgUsernameTaken), true
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized, flash.Error(appErr.Message), true
	}
	return http.StatusInternalServerError, flash.Status{}, false
}

// renderFormError re-renders view with the error as its status. Submitted
// values are not echoed back into the form.
func renderFormError(rd *Renderer, logger *slog.Logger, w http.ResponseWriter, r *http.Request, view string, page Page, err error) {
	code, status, ok := errorStatus(err)
	if !ok {
		internalError(logger, w, r, err)
		return
	}
	page.Status = status
	rd.Render(w, r, code, view, page)
}

// internalError logs err and answers with a generic 500. The raw error
// text may contain SQL or file paths and never reaches the client.
func internalError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
