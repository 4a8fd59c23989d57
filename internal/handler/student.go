package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/student-records/internal/apperror"
	"github.com/sakif/student-records/internal/flash"
	"github.com/sakif/student-records/internal/service"
)

// StudentHandler serves the student list and its forms. None of these
// routes look at the session: every visitor sees and edits the same rows.
type StudentHandler struct {
	students *service.StudentService
	views    *Renderer
	logger   *slog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(students *service.StudentService, views *Renderer, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		students: students,
		views:    views,
		logger:   logger,
	}
}

// studentInput reads the new/edit form.
func studentInput(r *http.Request) service.StudentInput {
	return service.StudentInput{
		Name:       r.PostFormValue("name"),
		City:       r.PostFormValue("city"),
		Address:    r.PostFormValue("address"),
		PostalCode: r.PostFormValue("postal_code"),
	}
}

// parseID parses a positive integer id. ok is false for anything else.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandleList renders every student.
//
// HTTP: GET /
func (h *StudentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		internalError(h.logger, w, r, err)
		return
	}
	h.views.Render(w, r, http.StatusOK, ViewList, Page{Students: students})
}

// HandleNewForm renders the empty student form.
//
// HTTP: GET /new
func (h *StudentHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, ViewNew, Page{})
}

// HandleCreate adds a student.
//
// HTTP: POST /new (name, city, address, postal_code)
func (h *StudentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if _, err := h.students.Create(r.Context(), studentInput(r)); err != nil {
		renderFormError(h.views, h.logger, w, r, ViewNew, Page{}, err)
		return
	}
	redirectWithStatus(w, r, "/", flash.Success(MsgStudentAdded))
}

// HandleEditForm renders the edit form prefilled from the stored row.
//
// HTTP: GET /edit/{id}
//
// An unknown id redirects to the list with a "not found" status.
func (h *StudentHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		redirectWithStatus(w, r, "/", flash.Error(MsgStudentNotFound))
		return
	}

	student, err := h.students.Get(r.Context(), id)
	if err != nil {
		h.notFoundOrFail(w, r, err)
		return
	}

	h.views.Render(w, r, http.StatusOK, ViewEdit, Page{Student: student})
}

// HandleUpdate saves the edit form.
//
// HTTP: POST /edit/{id} (name, city, address, postal_code)
//
// The id comes from the URL; the form's hidden id field is ignored.
// On a validation failure the form is shown again with the stored values.
func (h *StudentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		redirectWithStatus(w, r, "/", flash.Error(MsgStudentNotFound))
		return
	}

	_, err := h.students.Update(r.Context(), id, studentInput(r))
	if err == nil {
		redirectWithStatus(w, r, "/", flash.Success(MsgStudentUpdated))
		return
	}

	if !errors.Is(err, apperror.ErrValidation) {
		h.notFoundOrFail(w, r, err)
		return
	}

	stored, getErr := h.students.Get(r.Context(), id)
	if getErr != nil {
		h.notFoundOrFail(w, r, getErr)
		return
	}
	renderFormError(h.views, h.logger, w, r, ViewEdit, Page{Student: stored}, err)
}

// HandleDelete removes the student whose id is in the form body.
//
// HTTP: POST /delete (id)
//
// Found or not, the browser is sent back to the list; only the status differs.
func (h *StudentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PostFormValue("id"))
	if !ok {
		redirectWithStatus(w, r, "/", flash.Error(MsgStudentNotFound))
		return
	}

	if err := h.students.Delete(r.Context(), id); err != nil {
		h.notFoundOrFail(w, r, err)
		return
	}

	redirectWithStatus(w, r, "/", flash.Success(MsgStudentDeleted))
}

// notFoundOrFail sends ErrNotFound back to the list with a status and
// turns anything else into a 500.
func (h *StudentHandler) notFoundOrFail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		redirectWithStatus(w, r, "/", flash.Error(MsgStudentNotFound))
		return
	}
	internalError(h.logger, w, r, err)
}
