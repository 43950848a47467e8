package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// respondent-facing, anonymous
	api.Get("/get-form/{formId}", GetForm(app))
	api.Get("/get-user-form/{formId}", GetUserForm(app))
	api.Post("/add-form-data", AddFormData(app))

	api.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.Config))

		r.Post("/create-folder", CreateFolder(app))
		r.Get("/get-all-folder", GetAllFolder(app))
		r.Delete("/delete-folder/{folderId}", DeleteFolder(app))

		r.With(middlewares.ValidateForm).Post("/create-form", CreateForm(app))
		r.With(middlewares.ValidateForm).Post("/update-form/{formId}", UpdateForm(app))
		r.Get("/get-all-form/{folderId}", GetAllForm(app))
		r.Delete("/delete-form/{formId}", DeleteForm(app))
		r.Get("/get-form-data/{formId}", GetAllFormData(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}
