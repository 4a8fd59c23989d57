package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/student-records/internal/auth"
	"github.com/sakif/student-records/internal/flash"
	"github.com/sakif/student-records/internal/service"
)

// AuthHandler serves signup, login and logout.
//
//   - HandleSignupForm / HandleSignup → GET / POST /signup
//   - HandleLoginForm  / HandleLogin  → GET / POST /login
//   - HandleLogout                    → GET /logout
type AuthHandler struct {
	auth   *service.AuthService
	tokens *auth.TokenService
	views  *Renderer
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. tokens is only used for the session
// cookie's lifetime; tokens themselves are issued by the service.
func NewAuthHandler(svc *service.AuthService, tokens *auth.TokenService, views *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   svc,
		tokens: tokens,
		views:  views,
		logger: logger,
	}
}

// HandleSignupForm renders the registration form.
func (h *AuthHandler) HandleSignupForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, ViewSignup, Page{})
}

// HandleSignup registers a new user.
//
// HTTP: POST /signup (username, password)
//
// Empty field → 422, taken username → 409, both re-render the form.
// Success → redirect to /login.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	in := service.RegisterInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if _, err := h.auth.Register(r.Context(), in); err != nil {
		renderFormError(h.views, h.logger, w, r, ViewSignup, Page{}, err)
		return
	}

	redirectWithStatus(w, r, "/login", flash.Success(MsgRegistered))
}

// HandleLoginForm renders the login form.
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, ViewLogin, Page{})
}

// HandleLogin checks the credentials.
//
// HTTP: POST /login (username, password)
//
// On success the session cookie is set and the browser goes to the student
// list. On failure the form is re-rendered and no cookie is written.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	in := service.LoginInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	result, err := h.auth.Login(r.Context(), in)
	if err != nil {
		renderFormError(h.views, h.logger, w, r, ViewLogin, Page{}, err)
		return
	}

	auth.SetSessionCookie(w, result.Token, h.tokens)
	redirectWithStatus(w, r, "/", flash.Success(MsgLoginSuccessful))
}

// HandleLogout drops the session cookie and returns to the login page.
// It succeeds whether or not anyone was logged in.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	redirectWithStatus(w, r, "/login", flash.Success(MsgLogoutSuccess))
}
