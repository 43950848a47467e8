package store

import (
	"context"
	"testing"

	"github.com/mbolis/quick-forms/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResponsesUpsert(t *testing.T) {
	ctx := context.Background()
	responses := NewMemoryResponses()

	// record is created lazily on first submission
	err := responses.Upsert(ctx, "form-1", "s1", "field-1", "Alice")
	require.NoError(t, err)

	entries, err := responses.ListForForm(ctx, "form-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].SessionID)
	assert.Equal(t, map[string]string{"field-1": "Alice"}, entries[0].Data)

	// subsequent submissions update one key at a time
	err = responses.Upsert(ctx, "form-1", "s1", "field-2", "alice@example.com")
	require.NoError(t, err)
	err = responses.Upsert(ctx, "form-1", "s1", "field-1", "Alicia")
	require.NoError(t, err)

	entries, err = responses.ListForForm(ctx, "form-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]string{
		"field-1": "Alicia",
		"field-2": "alice@example.com",
	}, entries[0].Data)
}

func TestMemoryResponsesPurgeFields(t *testing.T) {
	ctx := context.Background()
	responses := NewMemoryResponses()

	require.NoError(t, responses.Upsert(ctx, "form-1", "s1", "field-1", "a"))
	require.NoError(t, responses.Upsert(ctx, "form-1", "s1", "field-2", "b"))
	require.NoError(t, responses.Upsert(ctx, "form-1", "s2", "field-1", "c"))
	require.NoError(t, responses.Upsert(ctx, "form-2", "s1", "field-1", "d"))

	// purge hits every session of the form, missing keys are no-ops
	err := responses.PurgeFields(ctx, "form-1", []string{"field-1", "field-3"})
	require.NoError(t, err)

	entries, err := responses.ListForForm(ctx, "form-1")
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Data, "field-1")
	}

	// other forms are untouched
	entries, err = responses.ListForForm(ctx, "form-2")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]string{"field-1": "d"}, entries[0].Data)
}

func TestMemoryResponsesDeleteAllForForm(t *testing.T) {
	ctx := context.Background()
	responses := NewMemoryResponses()

	require.NoError(t, responses.Upsert(ctx, "form-1", "s1", "field-1", "a"))
	require.NoError(t, responses.Upsert(ctx, "form-1", "s2", "field-1", "b"))

	err := responses.DeleteAllForForm(ctx, "form-1")
	require.NoError(t, err)

	entries, err := responses.ListForForm(ctx, "form-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Exercises the full update path over the in-memory store: after a sync, no
// response record may keep a key for a field that left the form.
func TestSyncLeavesNoOrphans(t *testing.T) {
	ctx := context.Background()
	responses := NewMemoryResponses()

	form := &model.Form{
		ID: "form-1",
		Fields: []model.Field{
			{ID: "bubble-1", IsBubble: true},
			{ID: "input-1"},
			{ID: "input-2"},
		},
		FirstInput: "input-1",
		LastInput:  "input-2",
	}

	require.NoError(t, responses.Upsert(ctx, "form-1", "s1", "input-1", "Alice"))
	require.NoError(t, responses.Upsert(ctx, "form-1", "s1", "input-2", "42"))
	require.NoError(t, responses.Upsert(ctx, "form-1", "s2", "input-1", "Bob"))

	newFields := []model.Field{
		{ID: "bubble-1", IsBubble: true},
		{ID: "input-2"},
	}
	err := model.SyncFields(ctx, responses, form, newFields)
	require.NoError(t, err)

	current := make(map[string]bool)
	for _, f := range form.Fields {
		current[f.ID] = true
	}

	entries, err := responses.ListForForm(ctx, "form-1")
	require.NoError(t, err)
	for _, e := range entries {
		for fieldID := range e.Data {
			assert.True(t, current[fieldID], "orphaned key %s in session %s", fieldID, e.SessionID)
		}
	}
}

// The concrete funnel scenario: a greeting bubble followed by a single name
// input, then an update that drops the input.
func TestSingleInputFormLifecycle(t *testing.T) {
	ctx := context.Background()
	responses := NewMemoryResponses()

	raw := model.RawForm{
		FormName: "Hello",
		Theme:    model.ThemeLight,
		Fields: []model.RawField{
			{FieldName: "hi", IsBubble: boolPtr(true), FieldType: 1, FieldValue: "Hi", Count: 1},
			{FieldName: "Name", IsBubble: boolPtr(false), FieldType: 5, Count: 1},
		},
		FieldTypeArray: []int{1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0},
	}

	fields, err := raw.Validate()
	require.NoError(t, err)
	require.NoError(t, model.EnsureFieldIDs(fields))

	form := &model.Form{ID: "form-1", Fields: fields}
	form.FirstInput, form.LastInput = model.InputBounds(fields)

	nameID := fields[1].ID
	require.Equal(t, nameID, form.FirstInput)
	require.Equal(t, nameID, form.LastInput)

	// a submission to the sole input advances both funnel counters
	incStart, incEnd := form.FunnelHit(nameID)
	assert.True(t, incStart)
	assert.True(t, incEnd)

	require.NoError(t, responses.Upsert(ctx, form.ID, "s1", nameID, "Alice"))
	entries, err := responses.ListForForm(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]string{nameID: "Alice"}, entries[0].Data)

	// dropping the input purges its data and clears the pointers
	err = model.SyncFields(ctx, responses, form, []model.Field{fields[0]})
	require.NoError(t, err)

	assert.Empty(t, form.FirstInput)
	assert.Empty(t, form.LastInput)

	entries, err = responses.ListForForm(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Data)
}

func boolPtr(b bool) *bool {
	return &b
}
