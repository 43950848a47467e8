package routes

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"
	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/model"
	"github.com/mbolis/quick-forms/routes/middlewares"
)

func CreateFolder(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator := middlewares.Creator(r)

		folder := model.Folder{}
		err := render.DecodeJSON(r.Body, &folder)
		if err != nil || strings.TrimSpace(folder.Name) == "" {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Bad request")
			return
		}

		folderId, err := uuid.NewV4()
		if err != nil {
			httpx.LogInternalError(w, r, "uuid.new", err)
			return
		}

		_, err = app.ExecContext(r.Context(), `
			INSERT INTO folder (id, name, creator) VALUES (?, ?, ?)`,
			folderId.String(),
			folder.Name,
			creator,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_folder", err)
			return
		}

		folder.ID = folderId.String()
		folder.Creator = creator

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"folder":  folder,
			"message": "Folder Created Successfully",
		})
	}
}

func GetAllFolder(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator := middlewares.Creator(r)

		rows, err := app.QueryContext(r.Context(), `
			SELECT id, name FROM folder WHERE creator = ?`,
			creator,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_folders", err)
			return
		}
		defer rows.Close()

		folders := []model.Folder{}
		for rows.Next() {
			f := model.Folder{}
			err = rows.Scan(&f.ID, &f.Name)
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_folders.scan", err)
				return
			}
			folders = append(folders, f)
		}

		// forms of the default folder are listed alongside
		generalId, err := generalFolder(r.Context(), app, creator)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_folders.general", err)
			return
		}

		forms, err := listForms(r.Context(), app, generalId)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_folders.forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"folders": folders,
			"forms":   forms,
		})
	}
}

func DeleteFolder(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator := middlewares.Creator(r)
		folderId := chi.URLParam(r, "folderId")

		var owner string
		err := app.QueryRowContext(r.Context(), `
			SELECT creator FROM folder WHERE id = ?`,
			folderId,
		).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != creator) {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "delete_folder.owner", "Bad request")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_folder", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, r, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		// drop response data and fields of every form in the folder,
		// then the forms, then the folder itself
		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM form_response
			WHERE form_id IN (SELECT id FROM form WHERE folder_id = ?)`,
			folderId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_folder.responses", err)
			return
		}

		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM form_field
			WHERE form_id IN (SELECT id FROM form WHERE folder_id = ?)`,
			folderId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_folder.fields", err)
			return
		}

		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM form WHERE folder_id = ?`,
			folderId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_folder.forms", err)
			return
		}

		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM folder WHERE id = ?`,
			folderId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_folder", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_folder.commit", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"deleted": true,
			"message": "Folder and associated forms deleted successfully",
		})
	}
}

// generalFolder finds or creates the caller's default folder.
func generalFolder(ctx context.Context, app app.App, creator string) (string, error) {
	var id string
	err := app.QueryRowContext(ctx, `
		SELECT id FROM folder WHERE creator = ? AND name = 'general'`,
		creator,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	folderId, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	_, err = app.ExecContext(ctx, `
		INSERT INTO folder (id, name, creator) VALUES (?, 'general', ?)`,
		folderId.String(),
		creator,
	)
	if err != nil {
		return "", err
	}
	return folderId.String(), nil
}
