package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-forms/config"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/model"
)

type ctxKey int

const (
	creatorKey ctxKey = iota
	formKey
)

// Authenticated authorizes the bearer token and puts the caller's user id
// into the request context.
func Authenticated(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(cfg.TokenSecret, nil), creator).Handler(next)
	}
}

func creator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(oauth.ClaimsContext).(map[string]string)
		if !ok || claims["user_id"] == "" {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "auth.claims.user_id")
			return
		}

		ctx := context.WithValue(r.Context(), creatorKey, claims["user_id"])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Creator returns the authenticated caller's user id.
func Creator(r *http.Request) string {
	id, _ := r.Context().Value(creatorKey).(string)
	return id
}

// FormPayload is a create-form/update-form body that passed validation.
type FormPayload struct {
	Raw    model.RawForm
	Fields []model.Field
}

// ValidateForm parses and validates the form definition body, short-circuiting
// with a uniform 400 on any failure. Handlers downstream read the normalized
// payload from the request context.
func ValidateForm(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := model.RawForm{}
		err := render.DecodeJSON(r.Body, &raw)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Bad request")
			return
		}

		fields, err := raw.Validate()
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.validate_form", "Bad request")
			return
		}

		ctx := context.WithValue(r.Context(), formKey, FormPayload{Raw: raw, Fields: fields})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Form returns the validated form payload put in context by ValidateForm.
func Form(r *http.Request) FormPayload {
	payload, _ := r.Context().Value(formKey).(FormPayload)
	return payload
}
