package handlers

import (
	"log/slog"
	"net/http"

	"github.com/campus-hub/student-records/internal/application/command"
	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/interface/http/render"
)

// AuthHandler serves the login/registration pages and processes
// authentication. All anticipated errors become a redirect with a one-shot
// message; nothing here exposes which credential check failed.
type AuthHandler struct {
	register *command.RegisterUserHandler
	login    *command.LoginHandler
	logout   *command.LogoutHandler
	sessions *SessionManager
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	register *command.RegisterUserHandler,
	login *command.LoginHandler,
	logout *command.LogoutHandler,
	sessions *SessionManager,
	renderer *render.Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		logout:   logout,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// ShowLogin renders the login form. GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	flash := h.sessions.PopFlash(w, r, sess)

	err := h.renderer.Render(w, http.StatusOK, "login.html", render.Page{
		Title:   "Login",
		Error:   flash.Error,
		Message: flash.Message,
	})
	if err != nil {
		h.serverError(w, r, err)
	}
}

// ShowRegister renders the registration form. GET /register
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	flash := h.sessions.PopFlash(w, r, sess)

	err := h.renderer.Render(w, http.StatusOK, "register.html", render.Page{
		Title: "Register",
		Error: flash.Error,
	})
	if err != nil {
		h.serverError(w, r, err)
	}
}

// Login processes the login form. POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	cmd := command.LoginCommand{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if _, err := h.login.Execute(r.Context(), cmd, sess); err != nil {
		if shared.IsValidation(err) || shared.IsInvalidCredentials(err) {
			h.sessions.RedirectWithError(w, r, sess, shared.UserMessage(err, "An error occurred during login"), "/login")
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		h.sessions.RedirectWithError(w, r, sess, "An error occurred during login", "/login")
		return
	}

	// The login command rotated the session id; re-issue the cookie.
	if err := h.sessions.Commit(r.Context(), w, sess); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

// Register processes the registration form. POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	cmd := command.RegisterUserCommand{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}

	if _, err := h.register.Execute(r.Context(), cmd); err != nil {
		if shared.IsValidation(err) || shared.IsConflict(err) {
			h.sessions.RedirectWithError(w, r, sess, shared.UserMessage(err, "An error occurred during registration"), "/register")
			return
		}
		h.logger.Error("registration failed", slog.String("error", err.Error()))
		h.sessions.RedirectWithError(w, r, sess, "An error occurred during registration", "/register")
		return
	}

	// Registration does not log the user in.
	h.sessions.RedirectWithMessage(w, r, sess, "Registration successful! Please login.", "/login")
}

// Logout destroys the session. GET|POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if err := h.logout.Execute(r.Context(), sess); err != nil {
		// Logout is best-effort; the cookie is cleared regardless.
		h.logger.Error("logout failed", slog.String("error", err.Error()))
	}
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("internal error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, "Something went wrong on our end. Please try again later.", http.StatusInternalServerError)
}
