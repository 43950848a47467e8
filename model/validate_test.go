package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool {
	return &b
}

func validRawForm() RawForm {
	return RawForm{
		FormName: "Onboarding",
		Theme:    ThemeLight,
		Fields: []RawField{
			{FieldName: "greeting", IsBubble: boolPtr(true), FieldType: 1, FieldValue: "Hi", Count: 1},
			{FieldName: "name", IsBubble: boolPtr(false), FieldType: 5, Count: 1},
		},
		FieldTypeArray: []int{1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RawForm)
		wantErr bool
	}{
		{
			name:   "valid form",
			mutate: func(raw *RawForm) {},
		},
		{
			name:    "empty form name",
			mutate:  func(raw *RawForm) { raw.FormName = "" },
			wantErr: true,
		},
		{
			name:    "blank form name",
			mutate:  func(raw *RawForm) { raw.FormName = "   " },
			wantErr: true,
		},
		{
			name:    "theme zero",
			mutate:  func(raw *RawForm) { raw.Theme = 0 },
			wantErr: true,
		},
		{
			name:    "theme out of range",
			mutate:  func(raw *RawForm) { raw.Theme = 4 },
			wantErr: true,
		},
		{
			name:    "no fields",
			mutate:  func(raw *RawForm) { raw.Fields = nil },
			wantErr: true,
		},
		{
			name:    "empty fields",
			mutate:  func(raw *RawForm) { raw.Fields = []RawField{} },
			wantErr: true,
		},
		{
			name:    "missing manifest",
			mutate:  func(raw *RawForm) { raw.FieldTypeArray = nil },
			wantErr: true,
		},
		{
			name:    "manifest sum below field count",
			mutate:  func(raw *RawForm) { raw.FieldTypeArray = []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0} },
			wantErr: true,
		},
		{
			name:    "manifest sum above field count",
			mutate:  func(raw *RawForm) { raw.FieldTypeArray[4] = 2 },
			wantErr: true,
		},
		{
			name:    "field without name",
			mutate:  func(raw *RawForm) { raw.Fields[1].FieldName = "" },
			wantErr: true,
		},
		{
			name:    "field without isBubble",
			mutate:  func(raw *RawForm) { raw.Fields[0].IsBubble = nil },
			wantErr: true,
		},
		{
			name:    "field type zero",
			mutate:  func(raw *RawForm) { raw.Fields[0].FieldType = 0 },
			wantErr: true,
		},
		{
			name:    "field type out of range",
			mutate:  func(raw *RawForm) { raw.Fields[0].FieldType = 12 },
			wantErr: true,
		},
		{
			name:    "zero count",
			mutate:  func(raw *RawForm) { raw.Fields[1].Count = 0 },
			wantErr: true,
		},
		{
			// the manifest bound on count is not enforced, any non-zero
			// count is accepted
			name:   "count above manifest bound",
			mutate: func(raw *RawForm) { raw.Fields[1].Count = 7 },
		},
		{
			name:   "negative count",
			mutate: func(raw *RawForm) { raw.Fields[1].Count = -1 },
		},
		{
			name:    "bubble content without value",
			mutate:  func(raw *RawForm) { raw.Fields[0].FieldValue = "" },
			wantErr: true,
		},
		{
			name:    "bubble content with blank value",
			mutate:  func(raw *RawForm) { raw.Fields[0].FieldValue = " \t" },
			wantErr: true,
		},
		{
			name: "button requires value",
			mutate: func(raw *RawForm) {
				raw.Fields[1] = RawField{FieldName: "submit", IsBubble: boolPtr(false), FieldType: 11, Count: 1}
				raw.FieldTypeArray = []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
			},
			wantErr: true,
		},
		{
			name: "input field without value",
			mutate: func(raw *RawForm) {
				raw.Fields[1].FieldValue = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRawForm()
			tt.mutate(&raw)

			fields, err := raw.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidForm)
				assert.Nil(t, fields)
				return
			}
			require.NoError(t, err)
			assert.Len(t, fields, len(raw.Fields))
		})
	}
}

func TestValidateNormalization(t *testing.T) {
	raw := validRawForm()
	raw.Fields[0].ID = "field-0"

	fields, err := raw.Validate()
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.Equal(t, Field{
		ID:        "field-0",
		Name:      "greeting",
		IsBubble:  true,
		Type:      FieldTypeBubbleText,
		Value:     "Hi",
		TypeCount: 1,
	}, fields[0])

	// new field keeps no identity, value defaults to empty
	assert.Equal(t, Field{
		Name:      "name",
		Type:      FieldTypeInputText,
		TypeCount: 1,
	}, fields[1])
}

func TestValidatePreservesOrder(t *testing.T) {
	raw := RawForm{
		FormName: "Quiz",
		Theme:    ThemeDark,
		Fields: []RawField{
			{FieldName: "q1", IsBubble: boolPtr(true), FieldType: 1, FieldValue: "First?", Count: 2},
			{FieldName: "a1", IsBubble: boolPtr(false), FieldType: 6, Count: 1},
			{FieldName: "q2", IsBubble: boolPtr(true), FieldType: 1, FieldValue: "Second?", Count: 2},
			{FieldName: "a2", IsBubble: boolPtr(false), FieldType: 10, Count: 1},
		},
		FieldTypeArray: []int{2, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0},
	}

	fields, err := raw.Validate()
	require.NoError(t, err)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"q1", "a1", "q2", "a2"}, names)
}

func TestFieldTypeRequiresValue(t *testing.T) {
	withValue := []FieldType{FieldTypeBubbleText, FieldTypeImage, FieldTypeVideo, FieldTypeGif, FieldTypeButton}
	for _, ft := range withValue {
		assert.True(t, ft.RequiresValue(), "type %d", ft)
	}

	withoutValue := []FieldType{FieldTypeInputText, FieldTypeNumber, FieldTypeEmail, FieldTypePhone, FieldTypeDate, FieldTypeRating}
	for _, ft := range withoutValue {
		assert.False(t, ft.RequiresValue(), "type %d", ft)
	}
}
