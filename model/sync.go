package model

import (
	"context"

	"github.com/gofrs/uuid"
)

// FieldPurger removes stored response data for field identities that are no
// longer part of a form definition.
type FieldPurger interface {
	PurgeFields(ctx context.Context, formID string, fieldIDs []string) error
}

// RemovedFieldIDs returns the identities present in existing but absent from
// updated. Updated fields without an identity are newly added and never match.
func RemovedFieldIDs(existing, updated []Field) []string {
	kept := make(map[string]bool, len(updated))
	for _, f := range updated {
		if f.ID != "" {
			kept[f.ID] = true
		}
	}

	var removed []string
	for _, f := range existing {
		if !kept[f.ID] {
			removed = append(removed, f.ID)
		}
	}
	return removed
}

// EnsureFieldIDs assigns a fresh identity to every field that lacks one.
// Identities are assigned once and stay stable across updates.
func EnsureFieldIDs(fields []Field) error {
	for i := range fields {
		if fields[i].ID != "" {
			continue
		}
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		fields[i].ID = id.String()
	}
	return nil
}

// SyncFields reconciles a validated new field list against the form's stored
// one: response data for removed fields is purged first, new fields get
// identities, and the first/last input pointers are recomputed from the new
// list. The purge runs before the new list is attached, so an interrupted
// update can leave at worst an unreferenced orphan, never a form whose
// visible schema diverges from its response data.
func SyncFields(ctx context.Context, purger FieldPurger, form *Form, fields []Field) error {
	removed := RemovedFieldIDs(form.Fields, fields)
	if len(removed) > 0 {
		err := purger.PurgeFields(ctx, form.ID, removed)
		if err != nil {
			return err
		}
	}

	err := EnsureFieldIDs(fields)
	if err != nil {
		return err
	}

	form.Fields = fields
	form.FirstInput, form.LastInput = InputBounds(fields)
	return nil
}
