package routes

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"
	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/model"
	"github.com/mbolis/quick-forms/routes/middlewares"
	"github.com/mbolis/quick-forms/store"
)

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator := middlewares.Creator(r)
		payload := middlewares.Form(r)

		folderId := payload.Raw.Folder
		var err error
		if folderId == "" {
			folderId, err = generalFolder(r.Context(), app, creator)
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_folder.general", err)
				return
			}
		} else {
			var one int
			err = app.QueryRowContext(r.Context(), `
				SELECT 1 FROM folder WHERE id = ?`,
				folderId,
			).Scan(&one)
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "create_form.folder", "Bad request")
				return
			}
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_folder", err)
				return
			}
		}

		fields := payload.Fields
		err = model.EnsureFieldIDs(fields)
		if err != nil {
			httpx.LogInternalError(w, r, "uuid.new", err)
			return
		}
		firstInput, lastInput := model.InputBounds(fields)

		formId, err := uuid.NewV4()
		if err != nil {
			httpx.LogInternalError(w, r, "uuid.new", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, r, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		now := time.Now()
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO form (id, folder_id, creator, name, theme, first_input, last_input, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			formId.String(),
			folderId,
			creator,
			payload.Raw.FormName,
			payload.Raw.Theme,
			nullable(firstInput),
			nullable(lastInput),
			now,
			now,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_form", err)
			return
		}

		err = insertFields(r.Context(), tx, formId.String(), fields)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_form.fields", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_form.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"form":    formId.String(),
			"message": "Form Created Successfully",
		})
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator := middlewares.Creator(r)
		payload := middlewares.Form(r)
		formId := chi.URLParam(r, "formId")

		folderId := payload.Raw.Folder
		var err error
		if folderId == "" {
			folderId, err = generalFolder(r.Context(), app, creator)
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_folder.general", err)
				return
			}
		}

		var folderOwner string
		err = app.QueryRowContext(r.Context(), `
			SELECT creator FROM folder WHERE id = ?`,
			folderId,
		).Scan(&folderOwner)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "update_form.folder", "Bad request")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_folder", err)
			return
		}

		// the folder must contain the form
		var one int
		err = app.QueryRowContext(r.Context(), `
			SELECT 1 FROM form WHERE id = ? AND folder_id = ?`,
			formId,
			folderId,
		).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "update_form.folder.form", "Bad request")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_folder.form", err)
			return
		}

		if folderOwner != creator {
			httpx.LogStatusMsg(w, r, http.StatusForbidden, log.DebugLevel, "update_form.owner", "Unauthorized to update this form")
			return
		}

		form, err := loadForm(r.Context(), app, formId)
		if errors.Is(err, errFormNotFound) {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "update_form.form", "Bad request")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, r, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		// purge response data of removed fields before the new field list
		// becomes visible, all inside one transaction
		err = model.SyncFields(r.Context(), store.Responses(tx), &form, payload.Fields)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.sync", err)
			return
		}
		form.Name = payload.Raw.FormName
		form.Theme = payload.Raw.Theme

		// replace all fields
		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM form_field WHERE form_id = ?`,
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.delete_fields", err)
			return
		}

		err = insertFields(r.Context(), tx, formId, form.Fields)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.fields", err)
			return
		}

		_, err = tx.ExecContext(r.Context(), `
			UPDATE form
			SET
				name = ?,
				theme = ?,
				first_input = ?,
				last_input = ?,
				updated_at = ?
			WHERE id = ?`,
			form.Name,
			form.Theme,
			nullable(form.FirstInput),
			nullable(form.LastInput),
			time.Now(),
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.commit", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"form":    formId,
			"message": "Form Updated Successfully",
		})
	}
}

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "formId")

		form, err := loadForm(r.Context(), app, formId)
		if errors.Is(err, errFormNotFound) {
			httpx.LogNotFound(w, r, "get_form", formId, "Something went Wrong")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"form": form,
		})
	}
}

func GetAllForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folderId := chi.URLParam(r, "folderId")

		forms, err := listForms(r.Context(), app, folderId)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creator := middlewares.Creator(r)
		formId := chi.URLParam(r, "formId")

		var owner string
		err := app.QueryRowContext(r.Context(), `
			SELECT creator FROM form WHERE id = ?`,
			formId,
		).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "delete_form", formId, "Form not found")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}
		if owner != creator {
			httpx.LogStatusMsg(w, r, http.StatusForbidden, log.DebugLevel, "delete_form.owner", "Unauthorized to delete this form")
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, r, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		err = store.Responses(tx).DeleteAllForForm(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form.responses", err)
			return
		}

		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM form_field WHERE form_id = ?`,
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form.fields", err)
			return
		}

		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM form WHERE id = ?`,
			formId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form.commit", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"deleted": true,
			"message": "Form deleted successfully",
		})
	}
}

func GetAllFormData(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "formId")

		form, err := loadForm(r.Context(), app, formId)
		if errors.Is(err, errFormNotFound) {
			httpx.LogNotFound(w, r, "get_form_data", formId, "Bad Request")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		entries, err := store.Responses(app.DB).ListForForm(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form_data", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"form": map[string]any{
				"fields": form.Fields,
				"start":  form.Start,
				"end":    form.End,
				"views":  form.Views,
			},
			"formDataEntries": entries,
		})
	}
}

var errFormNotFound = errors.New("form not found")

func loadForm(ctx context.Context, q store.DBTX, formId string) (form model.Form, err error) {
	var firstInput, lastInput sql.NullString
	err = q.QueryRowContext(ctx, `
		SELECT id, folder_id, creator, name, theme, views, start_count, end_count, first_input, last_input
		FROM form
		WHERE id = ?`,
		formId,
	).Scan(
		&form.ID, &form.Folder, &form.Creator, &form.Name, &form.Theme,
		&form.Views, &form.Start, &form.End, &firstInput, &lastInput,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = errFormNotFound
		return
	}
	if err != nil {
		return
	}
	form.FirstInput = firstInput.String
	form.LastInput = lastInput.String

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, is_bubble, type, value, type_count
		FROM form_field
		WHERE form_id = ?
		ORDER BY position`,
		formId,
	)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		f := model.Field{}
		err = rows.Scan(&f.ID, &f.Name, &f.IsBubble, &f.Type, &f.Value, &f.TypeCount)
		if err != nil {
			return
		}
		form.Fields = append(form.Fields, f)
	}
	err = rows.Err()
	return
}

func insertFields(ctx context.Context, tx *sql.Tx, formId string, fields []model.Field) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO form_field (id, form_id, position, name, is_bubble, type, value, type_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range fields {
		_, err = stmt.ExecContext(ctx, f.ID, formId, i, f.Name, f.IsBubble, f.Type, f.Value, f.TypeCount)
		if err != nil {
			return err
		}
	}
	return nil
}

type formRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func listForms(ctx context.Context, q store.DBTX, folderId string) ([]formRef, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name FROM form WHERE folder_id = ?`,
		folderId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forms := []formRef{}
	for rows.Next() {
		f := formRef{}
		err = rows.Scan(&f.ID, &f.Name)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
