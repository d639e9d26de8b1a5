// Package router wires every HTTP route onto a chi router.
//
// Route table:
//
//	GET    /api/students        list all students
//	POST   /api/students        create a student
//	GET    /api/students/{id}   get one student
//	PUT    /api/students/{id}   update a student's name
//	DELETE /api/students/{id}   delete a student
//	GET    /healthz             storage readiness
//	GET    /openapi.yaml        API description
//	GET    /openapi.json        API description
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/skillbridge/internal/http/handlers/docs"
	"github.com/aanand-mishra/skillbridge/internal/http/handlers/health"
	"github.com/aanand-mishra/skillbridge/internal/http/handlers/student"
	"github.com/aanand-mishra/skillbridge/internal/http/middleware"
	"github.com/aanand-mishra/skillbridge/internal/logger"
	"github.com/aanand-mishra/skillbridge/internal/utils/response"
)

// idPattern only matches decimal ids; anything else falls through to 404.
const idPattern = "/{id:[0-9]+}"

var (
	notFoundBody         = response.Response{Status: response.StatusError, Error: "not found"}
	methodNotAllowedBody = response.Response{Status: response.StatusError, Error: "method not allowed"}
)

// New builds the application router.
func New(svc student.Service, db health.Pinger, log *logger.Logger) (http.Handler, error) {
	openAPIJSON, err := docs.JSON()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID(log))
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusNotFound, notFoundBody)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusMethodNotAllowed, methodNotAllowedBody)
	})

	r.Route("/api/students", func(r chi.Router) {
		r.Get("/", student.GetList(svc))
		r.Post("/", student.New(svc))
		r.Get(idPattern, student.GetByID(svc))
		r.Put(idPattern, student.Update(svc))
		r.Delete(idPattern, student.Delete(svc))
	})

	r.Get("/healthz", health.Check(db))
	r.Get("/openapi.yaml", docs.YAML())
	r.Get("/openapi.json", openAPIJSON)

	return r, nil
}
