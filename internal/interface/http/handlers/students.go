package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/campus-hub/student-records/internal/application/command"
	"github.com/campus-hub/student-records/internal/application/query"
	"github.com/campus-hub/student-records/internal/domain/session"
	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/interface/http/render"
)

// studentForm mirrors the create/edit form fields. The validator catches
// shape problems (missing, too long) at the boundary; parsing, normalization
// and range checks remain with the commands.
type studentForm struct {
	FirstName     string `validate:"required,max=50"`
	LastName      string `validate:"required,max=50"`
	Email         string `validate:"required,email"`
	StudentNumber string `validate:"required,max=50"`
	Age           string `validate:"required"`
	Major         string `validate:"required,max=100"`
	GPA           string // optional, defaults to 0
	IsActive      string // checkbox, "on" when checked
}

func studentFormFromRequest(r *http.Request) studentForm {
	return studentForm{
		FirstName:     r.PostFormValue("firstName"),
		LastName:      r.PostFormValue("lastName"),
		Email:         r.PostFormValue("email"),
		StudentNumber: r.PostFormValue("studentId"),
		Age:           r.PostFormValue("age"),
		Major:         r.PostFormValue("major"),
		GPA:           r.PostFormValue("gpa"),
		IsActive:      r.PostFormValue("isActive"),
	}
}

func (f studentForm) fields() command.StudentFields {
	return command.StudentFields{
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Email:         f.Email,
		StudentNumber: f.StudentNumber,
		Age:           f.Age,
		Major:         f.Major,
		GPA:           f.GPA,
	}
}

// formErrorMessage converts the first validator error to a user message.
func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "max":
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		case "email":
			return "A valid email is required"
		}
	}
	return "All required fields must be filled"
}

// listView is the data model for the students index view.
type listView struct {
	*query.ListStudentsResult
	PrevPage int
	NextPage int
}

// StudentHandler serves the student CRUD pages. Every route underneath it is
// behind RequireAuth.
type StudentHandler struct {
	list     *query.ListStudentsHandler
	get      *query.GetStudentHandler
	create   *command.CreateStudentHandler
	update   *command.UpdateStudentHandler
	delete   *command.DeleteStudentHandler
	sessions *SessionManager
	renderer *render.Renderer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(
	list *query.ListStudentsHandler,
	get *query.GetStudentHandler,
	create *command.CreateStudentHandler,
	update *command.UpdateStudentHandler,
	del *command.DeleteStudentHandler,
	sessions *SessionManager,
	renderer *render.Renderer,
	logger *slog.Logger,
) *StudentHandler {
	return &StudentHandler{
		list:     list,
		get:      get,
		create:   create,
		update:   update,
		delete:   del,
		sessions: sessions,
		renderer: renderer,
		validate: validator.New(),
		logger:   logger,
	}
}

// List renders the filtered, paginated student listing.
// GET /students?search=&major=&page=&limit=
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.list.Execute(r.Context(), query.ListStudentsQuery{
		Search: r.URL.Query().Get("search"),
		Major:  r.URL.Query().Get("major"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		// Redirecting back to /students would loop, so fail hard here.
		h.serverError(w, r, err)
		return
	}

	flash := h.sessions.PopFlash(w, r, sess)
	err = h.renderer.Render(w, http.StatusOK, "students_index.html", render.Page{
		Title:    "Students",
		Username: sess.Username,
		Error:    flash.Error,
		Message:  flash.Message,
		Data: listView{
			ListStudentsResult: result,
			PrevPage:           result.CurrentPage - 1,
			NextPage:           result.CurrentPage + 1,
		},
	})
	if err != nil {
		h.serverError(w, r, err)
	}
}

// ShowCreate renders the create form. GET /students/create
func (h *StudentHandler) ShowCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	flash := h.sessions.PopFlash(w, r, sess)

	err := h.renderer.Render(w, http.StatusOK, "student_create.html", render.Page{
		Title:    "Add New Student",
		Username: sess.Username,
		Error:    flash.Error,
	})
	if err != nil {
		h.serverError(w, r, err)
	}
}

// Create processes the create form. POST /students
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	form := studentFormFromRequest(r)
	if err := h.validate.Struct(form); err != nil {
		h.sessions.RedirectWithError(w, r, sess, formErrorMessage(err), "/students/create")
		return
	}

	_, err := h.create.Execute(r.Context(), command.CreateStudentCommand{Fields: form.fields()})
	if err != nil {
		if shared.IsValidation(err) || shared.IsConflict(err) {
			h.sessions.RedirectWithError(w, r, sess, shared.UserMessage(err, "Error creating student"), "/students/create")
			return
		}
		h.logger.Error("failed to create student", slog.String("error", err.Error()))
		h.sessions.RedirectWithError(w, r, sess, "Error creating student", "/students/create")
		return
	}

	h.sessions.RedirectWithMessage(w, r, sess, "Student created successfully!", "/students")
}

// Show renders the student detail page. GET /students/{id}
func (h *StudentHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	s, err := h.get.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleLookupError(w, r, sess, err, "Error fetching student")
		return
	}

	flash := h.sessions.PopFlash(w, r, sess)
	err = h.renderer.Render(w, http.StatusOK, "student_show.html", render.Page{
		Title:    s.FullName(),
		Username: sess.Username,
		Error:    flash.Error,
		Message:  flash.Message,
		Data:     s,
	})
	if err != nil {
		h.serverError(w, r, err)
	}
}

// ShowEdit renders the edit form. GET /students/{id}/edit
func (h *StudentHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	s, err := h.get.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleLookupError(w, r, sess, err, "Error fetching student")
		return
	}

	flash := h.sessions.PopFlash(w, r, sess)
	err = h.renderer.Render(w, http.StatusOK, "student_edit.html", render.Page{
		Title:    "Edit " + s.FullName(),
		Username: sess.Username,
		Error:    flash.Error,
		Data:     s,
	})
	if err != nil {
		h.serverError(w, r, err)
	}
}

// Update processes the edit form.
// PUT /students/{id}, also POST /students/{id}/update
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	id := chi.URLParam(r, "id")
	editURL := "/students/" + id + "/edit"

	form := studentFormFromRequest(r)
	if err := h.validate.Struct(form); err != nil {
		h.sessions.RedirectWithError(w, r, sess, formErrorMessage(err), editURL)
		return
	}

	s, err := h.update.Execute(r.Context(), command.UpdateStudentCommand{
		ID:       id,
		Fields:   form.fields(),
		IsActive: form.IsActive,
	})
	if err != nil {
		switch {
		case shared.IsNotFound(err):
			h.sessions.RedirectWithError(w, r, sess, "Student not found", "/students")
		case shared.IsValidation(err), shared.IsConflict(err):
			h.sessions.RedirectWithError(w, r, sess, shared.UserMessage(err, "Error updating student"), editURL)
		default:
			h.logger.Error("failed to update student", slog.String("error", err.Error()))
			h.sessions.RedirectWithError(w, r, sess, "Error updating student", editURL)
		}
		return
	}

	h.sessions.RedirectWithMessage(w, r, sess, "Student updated successfully!", "/students/"+s.ID)
}

// Delete removes a student.
// DELETE /students/{id}, also POST /students/{id}/delete
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if err := h.delete.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleLookupError(w, r, sess, err, "Error deleting student")
		return
	}

	h.sessions.RedirectWithMessage(w, r, sess, "Student deleted successfully!", "/students")
}

// handleLookupError maps a by-id failure to the listing page with the right
// one-shot message.
func (h *StudentHandler) handleLookupError(w http.ResponseWriter, r *http.Request, sess *session.Session, err error, fallback string) {
	if shared.IsNotFound(err) {
		h.sessions.RedirectWithError(w, r, sess, "Student not found", "/students")
		return
	}
	h.logger.Error(fallback, slog.String("error", err.Error()))
	h.sessions.RedirectWithError(w, r, sess, fallback, "/students")
}

func (h *StudentHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("internal error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, "Something went wrong on our end. Please try again later.", http.StatusInternalServerError)
}
