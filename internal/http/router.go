package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finny/internal/http/auth"
	"github.com/MrJamesThe3rd/finny/internal/http/finance"
	"github.com/MrJamesThe3rd/finny/internal/http/importcsv"
	"github.com/MrJamesThe3rd/finny/internal/http/matching"
	"github.com/MrJamesThe3rd/finny/internal/http/profile"
)

func New(
	tokens *auth.Tokens,
	allowedOrigins []string,
	authV1 *auth.Handler,
	profileV1 *profile.Handler,
	financeV1 *finance.Handler,
	importV1 *importcsv.Handler,
	rulesV1 *matching.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Require(tokens))

			r.Route("/profile", profileV1.Routes)
			financeV1.Routes(r)
			r.Route("/transactions/import", importV1.Routes)
			r.Route("/categories/rules", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				rulesV1.Routes(r)
			})
		})
	})

	return router
}
