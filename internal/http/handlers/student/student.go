// Package student contains the HTTP handlers for the Student resource.
//
// Each exported function is a factory: it receives its dependencies once
// at route registration and returns the http.HandlerFunc that serves
// every request.
//
//	r.Post("/", student.New(svc))
package student

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/skillbridge/internal/logger"
	"github.com/aanand-mishra/skillbridge/internal/service"
	"github.com/aanand-mishra/skillbridge/internal/types"
	"github.com/aanand-mishra/skillbridge/internal/utils/response"
)

// Service is the subset of the student service the handlers need.
type Service interface {
	GetAllStudents(ctx context.Context) ([]types.Student, error)
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)
	StudentExists(ctx context.Context, name string) (bool, error)
	AddNewStudent(ctx context.Context, name string) (types.Student, error)
	UpdateStudent(ctx context.Context, student types.Student) (types.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

var (
	errEmptyBody       = errors.New("request body is empty")
	errInvalidID       = errors.New("invalid id: must be an integer")
	errStudentNotFound = errors.New("student not found")
	errStudentExists   = errors.New("student already exists")
	errInternal        = errors.New("internal server error")
)

// validate reports field names as they appear in JSON ("name", not "Name").
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// GetList handles GET /api/students.
//
// 200 with a JSON array of all students, [] when there are none.
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		log.Info().Msg("getting all students")

		students, err := svc.GetAllStudents(r.Context())
		if err != nil {
			internalError(w, log, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// GetByID handles GET /api/students/{id}.
//
// 200 with the student, 404 when no student has that id.
func GetByID(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		id, ok := parseID(w, r)
		if !ok {
			return
		}
		log.Info().Int64("id", id).Msg("getting a student")

		student, err := svc.GetStudentByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errStudentNotFound))
				return
			}
			internalError(w, log, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// New handles POST /api/students.
//
// Request body:
//
//	{ "name": "Ada" }
//
// 201 with the created student, 400 when the name is missing or already
// taken.
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		log.Info().Msg("creating a student")

		req, ok := decodeStudentRequest(w, r)
		if !ok {
			return
		}

		exists, err := svc.StudentExists(r.Context(), req.Name)
		if err != nil {
			internalError(w, log, err)
			return
		}
		if exists {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errStudentExists))
			return
		}

		student, err := svc.AddNewStudent(r.Context(), req.Name)
		if err != nil {
			// lost a race with a concurrent create of the same name
			if errors.Is(err, service.ErrStudentExists) {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errStudentExists))
				return
			}
			internalError(w, log, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, student)
	}
}

// Update handles PUT /api/students/{id}.
//
// Only the name can change. 400 when the name is missing or belongs to
// another student, 404 when the id does not exist, otherwise 200 with
// the updated student.
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		id, ok := parseID(w, r)
		if !ok {
			return
		}
		log.Info().Int64("id", id).Msg("updating a student")

		req, ok := decodeStudentRequest(w, r)
		if !ok {
			return
		}

		student, err := svc.GetStudentByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errStudentNotFound))
				return
			}
			internalError(w, log, err)
			return
		}

		student.Name = req.Name
		updated, err := svc.UpdateStudent(r.Context(), student)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrStudentExists):
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errStudentExists))
			case errors.Is(err, service.ErrStudentNotFound):
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errStudentNotFound))
			default:
				internalError(w, log, err)
			}
			return
		}

		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}.
//
// 200 with a confirmation message, 404 when the id does not exist.
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		id, ok := parseID(w, r)
		if !ok {
			return
		}
		log.Info().Int64("id", id).Msg("deleting a student")

		if _, err := svc.GetStudentByID(r.Context(), id); err != nil {
			if errors.Is(err, service.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errStudentNotFound))
				return
			}
			internalError(w, log, err)
			return
		}

		if err := svc.DeleteStudent(r.Context(), id); err != nil {
			if errors.Is(err, service.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errStudentNotFound))
				return
			}
			internalError(w, log, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Message("student deleted successfully"))
	}
}

// parseID reads the {id} path parameter. The route pattern already
// restricts it to digits, so only overflow can fail here.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errInvalidID))
		return 0, false
	}
	return id, true
}

// decodeStudentRequest decodes and validates the request body, writing a
// 400 response itself when the body is unusable.
func decodeStudentRequest(w http.ResponseWriter, r *http.Request) (types.StudentRequest, bool) {
	var req types.StudentRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errEmptyBody))
		return req, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return req, false
	}

	req.Name = strings.TrimSpace(req.Name)

	if err := validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return req, false
	}

	return req, true
}

// internalError logs err and answers 500 without leaking its text.
func internalError(w http.ResponseWriter, log *logger.Logger, err error) {
	log.Err(err).Msg("request failed")
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errInternal))
}
