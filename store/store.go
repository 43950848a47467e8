package store

import (
	"context"
	"database/sql"

	"github.com/mbolis/quick-forms/model"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same store can run standalone or inside a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ResponseStore keeps the per-(form, session) answer records.
type ResponseStore interface {
	// Upsert finds or creates the record for (formID, sessionID) and sets
	// one field's value.
	Upsert(ctx context.Context, formID, sessionID, fieldID, value string) error
	// PurgeFields bulk-removes the given field identities from every record
	// of the form. Missing identities are no-ops.
	PurgeFields(ctx context.Context, formID string, fieldIDs []string) error
	// DeleteAllForForm drops every record of the form.
	DeleteAllForForm(ctx context.Context, formID string) error
	// ListForForm returns all records of the form, one per session.
	ListForForm(ctx context.Context, formID string) ([]model.FormResponse, error)
}
