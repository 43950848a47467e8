package model

import (
	"errors"
	"strings"
)

// ErrInvalidForm is the uniform rejection for any malformed form payload.
// No field-level detail is surfaced to the client.
var ErrInvalidForm = errors.New("invalid form definition")

// RawForm is the wire shape of create-form and update-form bodies,
// before validation.
type RawForm struct {
	FormName       string     `json:"formName"`
	Theme          int        `json:"theme"`
	Folder         string     `json:"folder"`
	Fields         []RawField `json:"fields"`
	FieldTypeArray []int      `json:"fieldTypeArray"`
}

type RawField struct {
	ID         string `json:"id"`
	FieldName  string `json:"fieldName"`
	IsBubble   *bool  `json:"isBubble"`
	FieldType  int    `json:"fieldType"`
	FieldValue string `json:"fieldValue"`
	Count      int    `json:"count"`
}

// Validate checks the structural consistency of a submitted form definition
// and returns the normalized field list, preserving input order and any
// identities the client carried over. Checks run in order and stop at the
// first failure; nothing is returned on failure.
func (raw RawForm) Validate() ([]Field, error) {
	if strings.TrimSpace(raw.FormName) == "" {
		return nil, ErrInvalidForm
	}
	if raw.Theme < ThemeLight || raw.Theme > ThemeBlue {
		return nil, ErrInvalidForm
	}
	if len(raw.Fields) == 0 || raw.FieldTypeArray == nil {
		return nil, ErrInvalidForm
	}

	// the manifest declares per-type multiplicities; its sum must account
	// for every field exactly
	total := 0
	for _, n := range raw.FieldTypeArray {
		total += n
	}
	if total != len(raw.Fields) {
		return nil, ErrInvalidForm
	}

	fields := make([]Field, 0, len(raw.Fields))
	for _, f := range raw.Fields {
		fieldType := FieldType(f.FieldType)
		if f.FieldName == "" || f.Count == 0 || f.IsBubble == nil ||
			fieldType < FieldTypeBubbleText || fieldType > FieldTypeButton {
			return nil, ErrInvalidForm
		}

		if fieldType.RequiresValue() && strings.TrimSpace(f.FieldValue) == "" {
			return nil, ErrInvalidForm
		}

		// the manifest bound check cannot trip for a non-zero count,
		// so any such count passes
		if i := f.FieldType - 1; i < len(raw.FieldTypeArray) &&
			f.Count > raw.FieldTypeArray[i] && f.Count <= 0 {
			return nil, ErrInvalidForm
		}

		fields = append(fields, Field{
			ID:        f.ID,
			Name:      f.FieldName,
			IsBubble:  *f.IsBubble,
			Type:      fieldType,
			Value:     f.FieldValue,
			TypeCount: f.Count,
		})
	}
	return fields, nil
}
