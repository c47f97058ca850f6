package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the calculation and clock endpoints onto the given
// router under the /api prefix.
func RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", Calculate)
		r.Get("/time", Time)
	})
}
