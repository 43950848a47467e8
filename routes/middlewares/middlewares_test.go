package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mbolis/quick-forms/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFormBody = `{
	"formName": "Hello",
	"theme": 1,
	"fields": [
		{"fieldName": "hi", "isBubble": true, "fieldType": 1, "fieldValue": "Hi", "count": 1},
		{"fieldName": "Name", "isBubble": false, "fieldType": 5, "count": 1}
	],
	"fieldTypeArray": [1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0]
}`

func TestValidateFormPassesPayload(t *testing.T) {
	var got FormPayload
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Form(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/api/create-form", strings.NewReader(validFormBody))
	rec := httptest.NewRecorder()
	ValidateForm(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello", got.Raw.FormName)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, model.FieldTypeInputText, got.Fields[1].Type)
}

func TestValidateFormRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "malformed json",
			body: `{"formName": `,
		},
		{
			name: "isBubble not boolean",
			body: strings.Replace(validFormBody, `"isBubble": true`, `"isBubble": "yes"`, 1),
		},
		{
			name: "manifest sum mismatch",
			body: strings.Replace(validFormBody, `[1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0]`, `[1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]`, 1),
		},
		{
			name: "missing theme",
			body: strings.Replace(validFormBody, `"theme": 1,`, ``, 1),
		},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on invalid input")
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/create-form", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			ValidateForm(next).ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Bad request", body["errorMessage"])
		})
	}
}
