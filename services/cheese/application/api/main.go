package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cheeseshop/pkg/app"
	"github.com/ghuser/cheeseshop/pkg/auth"
	"github.com/ghuser/cheeseshop/services/cheese/application/handlers"
	appsvcs "github.com/ghuser/cheeseshop/services/cheese/application/services"
)

// CheeseRoutes registers cheese listing and user endpoints on the provided
// chi router.
func CheeseRoutes(r chi.Router, a *app.Application) {
	Routes(r, appsvcs.New(a), auth.RequireAuth(a.SessionStore, a.Logger))
}

// Routes registers the endpoints against already wired services. requireAuth
// guards the publication endpoints.
func Routes(r chi.Router, svcs *appsvcs.Services, requireAuth func(http.Handler) http.Handler) {
	r.Route("/cheeses", func(r chi.Router) {
		r.Get("/", handlers.NewListCheeseListingsHandler(svcs).Execute)
		r.Post("/", handlers.NewPostCheeseListingHandler(svcs).Execute)

		r.Route("/{id}", func(r chi.Router) {
			update := handlers.NewUpdateCheeseListingHandler(svcs).Execute
			r.Get("/", handlers.NewGetCheeseListingHandler(svcs).Execute)
			r.Put("/", update)
			r.Patch("/", update)
			r.Delete("/", handlers.NewDeleteCheeseListingHandler(svcs).Execute)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/publish", handlers.NewPublishCheeseListingHandler(svcs, true).Execute)
				r.Post("/unpublish", handlers.NewPublishCheeseListingHandler(svcs, false).Execute)
			})
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", handlers.NewPostUserHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetUserHandler(svcs).Execute)
	})
}
