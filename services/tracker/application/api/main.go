package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/worktrack/pkg/app"
	"github.com/ghuser/worktrack/pkg/auth"
	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/services/tracker/application/handlers"
	appsvcs "github.com/ghuser/worktrack/services/tracker/application/services"
)

// TrackerRoutes registers tracker endpoints on the provided chi router.
func TrackerRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a.SessionStore, a.Logger)
}

// Mount registers the tracker endpoints backed by svcs. Registration and
// sign-in are public; every other route requires a session from store.
func Mount(r chi.Router, svcs *appsvcs.Services, store sessions.Store, log logger.Logger) {
	users := handlers.NewUserHandler(svcs, store, log)
	workItems := handlers.NewWorkItemHandler(svcs)
	boards := handlers.NewBoardHandler(svcs)
	iterations := handlers.NewIterationHandler(svcs)
	milestones := handlers.NewMilestoneHandler(svcs)
	projects := handlers.NewProjectHandler(svcs)
	organisations := handlers.NewOrganisationHandler(svcs)
	workspaces := handlers.NewWorkspaceHandler(svcs)
	docs := handlers.NewDocumentationHandler(svcs)

	r.Post("/users", users.Register)
	r.Post("/auth/session", users.SignIn)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(store, log))

		r.Get("/users/{id}", users.Get)
		r.Delete("/auth/session", users.SignOut)

		r.Route("/work-items", func(r chi.Router) {
			r.Post("/", workItems.Create)
			r.Get("/", workItems.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", workItems.Get)
				r.Patch("/", workItems.Update)
				r.Delete("/", workItems.Delete)
				r.Put("/assignee", workItems.Assign)
				r.Delete("/assignee", workItems.Unassign)
			})
		})

		r.Route("/boards", func(r chi.Router) {
			r.Post("/", boards.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", boards.Get)
				r.Delete("/", boards.Delete)
				r.Post("/filters", boards.AddFilter)
				r.Delete("/filters", boards.RemoveFilter)
				r.Post("/order-by", boards.AddOrderBy)
				r.Delete("/order-by", boards.RemoveOrderBy)
				r.Get("/work-items", boards.WorkItems)
			})
		})

		r.Route("/iterations", func(r chi.Router) {
			r.Post("/", iterations.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", iterations.Get)
				r.Delete("/", iterations.Delete)
				r.Put("/work-items/{workItemID}", iterations.AddWorkItem)
				r.Delete("/work-items/{workItemID}", iterations.RemoveWorkItem)
			})
		})

		r.Route("/milestones", func(r chi.Router) {
			r.Post("/", milestones.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", milestones.Get)
				r.Delete("/", milestones.Delete)
				r.Put("/work-items/{workItemID}", milestones.AddWorkItem)
				r.Delete("/work-items/{workItemID}", milestones.RemoveWorkItem)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projects.Create)
			r.Get("/", projects.List)
			r.Get("/{id}", projects.Get)
			r.Delete("/{id}", projects.Delete)
		})

		r.Route("/organisations", func(r chi.Router) {
			r.Post("/", organisations.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", organisations.Get)
				r.Put("/owners/{userID}", organisations.AddOwner)
				r.Delete("/owners/{userID}", organisations.RemoveOwner)
			})
		})

		r.Route("/workspaces", func(r chi.Router) {
			r.Post("/", workspaces.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", workspaces.Get)
				r.Put("/{kind}/{resourceID}", workspaces.AddResource)
				r.Delete("/{kind}/{resourceID}", workspaces.RemoveResource)
			})
		})

		r.Route("/documentation", func(r chi.Router) {
			r.Post("/", docs.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", docs.Get)
				r.Delete("/", docs.Delete)
				r.Put("/content", docs.UploadContent)
				r.Get("/content-url", docs.ContentURL)
			})
		})
	})
}
