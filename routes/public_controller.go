package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/store"
)

func GetUserForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "formId")

		form, err := loadForm(r.Context(), app, formId)
		if errors.Is(err, errFormNotFound) {
			httpx.LogNotFound(w, r, "get_user_form", formId, "Something went Wrong")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		// atomic add, concurrent respondents must not undercount
		_, err = app.ExecContext(r.Context(), `
			UPDATE form SET views = views + 1 WHERE id = ?`,
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form.views", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"form":  form.Fields,
			"theme": form.Theme,
		})
	}
}

type formDataRequest struct {
	FormID    string `json:"formId"`
	FieldID   string `json:"fieldId"`
	Input     string `json:"input"`
	SessionID string `json:"sessionId"`
}

func AddFormData(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := formDataRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Bad request")
			return
		}
		if req.FormID == "" || req.FieldID == "" || req.Input == "" {
			httpx.LogNotFound(w, r, "add_form_data", req.FormID, "Something went Wrong")
			return
		}

		form, err := loadForm(r.Context(), app, req.FormID)
		if errors.Is(err, errFormNotFound) {
			httpx.LogNotFound(w, r, "add_form_data.form", req.FormID, "Something went Wrong")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		err = store.Responses(app.DB).Upsert(r.Context(), form.ID, req.SessionID, req.FieldID, req.Input)
		if err != nil {
			httpx.LogInternalError(w, r, "db.upsert_form_data", err)
			return
		}

		incStart, incEnd := form.FunnelHit(req.FieldID)
		if incStart || incEnd {
			// atomic adds, never read-modify-write
			_, err = app.ExecContext(r.Context(), `
				UPDATE form
				SET
					start_count = start_count + ?,
					end_count = end_count + ?
				WHERE id = ?`,
				btoi(incStart),
				btoi(incEnd),
				form.ID,
			)
			if err != nil {
				httpx.LogInternalError(w, r, "db.funnel_counters", err)
				return
			}
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, true)
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
