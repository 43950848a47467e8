package store

import (
	"context"
	"strings"

	"github.com/mbolis/quick-forms/model"
)

type sqlResponses struct {
	db DBTX
}

// Responses returns a ResponseStore backed by the form_response table.
// Pass a *sql.Tx to run inside an enclosing transaction.
func Responses(db DBTX) ResponseStore {
	return &sqlResponses{db}
}

func (s *sqlResponses) Upsert(ctx context.Context, formID, sessionID, fieldID, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO form_response (form_id, session_id, field_id, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (form_id, session_id, field_id)
		DO UPDATE SET value = excluded.value`,
		formID,
		sessionID,
		fieldID,
		value,
	)
	return err
}

func (s *sqlResponses) PurgeFields(ctx context.Context, formID string, fieldIDs []string) error {
	if len(fieldIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(fieldIDs)+1)
	args = append(args, formID)
	for _, id := range fieldIDs {
		args = append(args, id)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(fieldIDs)), ",")
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM form_response
		WHERE form_id = ?
			AND field_id IN (`+placeholders+`)`,
		args...,
	)
	return err
}

func (s *sqlResponses) DeleteAllForForm(ctx context.Context, formID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM form_response
		WHERE form_id = ?`,
		formID,
	)
	return err
}

func (s *sqlResponses) ListForForm(ctx context.Context, formID string) ([]model.FormResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, field_id, value
		FROM form_response
		WHERE form_id = ?
		ORDER BY session_id`,
		formID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.FormResponse{}
	for rows.Next() {
		var sessionID, fieldID, value string
		err = rows.Scan(&sessionID, &fieldID, &value)
		if err != nil {
			return nil, err
		}

		lastIdx := len(responses) - 1
		if lastIdx > -1 && responses[lastIdx].SessionID == sessionID {
			responses[lastIdx].Data[fieldID] = value
		} else {
			responses = append(responses, model.FormResponse{
				FormID:    formID,
				SessionID: sessionID,
				Data:      map[string]string{fieldID: value},
			})
		}
	}
	return responses, rows.Err()
}
