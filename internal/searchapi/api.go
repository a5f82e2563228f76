// Package searchapi is the HTTP surface over the interpreter, bijection, and
// search packages: a small JSON API for creating and inspecting
// Busy-Beaver sweep jobs, and for one-off program evaluation and
// index/program conversion, grounded on server/api/api.go and
// server/endpoints.go's EndpointFunc/httpEndpoint wrapper.
package searchapi

import (
	"log"
	"net/http"
	"time"

	"github.com/dekarrin/primrec/internal/jobstore"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// API holds the dependencies every endpoint needs.
type API struct {
	Jobs              jobstore.Store
	Secret            []byte
	DefaultScanRange  int
	DefaultStepBudget int
}

// endpointFunc is the shape every handler method on API implements, mirrored
// on server/endpoints.go's EndpointFunc.
type endpointFunc func(req *http.Request) result

// httpEndpoint adapts an endpointFunc to http.HandlerFunc, recovering from
// panics and logging the outcome of every request, the same two concerns
// server/api/api.go's httpEndpoint wrapper centralizes so individual
// handlers don't each reimplement them.
func httpEndpoint(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)

		res := ep(req)
		logHttpResponse(req, res)
		res.writeResponse(w)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) {
	if r := recover(); r != nil {
		log.Printf("searchapi: panic handling %s %s: %v", req.Method, req.URL.Path, r)
		internalServerError("internal panic").writeResponse(w)
	}
}

func logHttpResponse(req *http.Request, res result) {
	if res.isErr {
		log.Printf("searchapi: %s %s -> %d: %s", req.Method, req.URL.Path, res.status, res.internalMsg)
		return
	}
	log.Printf("searchapi: %s %s -> %d", req.Method, req.URL.Path, res.status)
}

// Router builds the complete chi router for the search API, wiring auth onto
// every mutating route and leaving GET routes open, per the reference
// deployment's route table.
func (a API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestTimer)

	r.Get("/info", httpEndpoint(a.epInfo))
	r.Post("/login", httpEndpoint(a.epLogin))

	r.Get("/jobs", httpEndpoint(a.epListJobs))
	r.Get("/jobs/{id}", httpEndpoint(a.epGetJob))
	r.With(a.auth).Post("/jobs", httpEndpoint(a.epCreateJob))

	r.With(a.auth).Post("/bijection/create", httpEndpoint(a.epBijectionCreate))
	r.With(a.auth).Post("/bijection/hash", httpEndpoint(a.epBijectionHash))
	r.With(a.auth).Post("/eval", httpEndpoint(a.epEval))

	return r
}

func (a API) auth(next http.Handler) http.Handler {
	return requireAuth(a.Secret, next.ServeHTTP)
}

func requestTimer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		log.Printf("searchapi: %s %s took %s", req.Method, req.URL.Path, time.Since(start))
	})
}
