package model

import "time"

// FieldType enumerates the 11 kinds of form fields.
// Bubbles carry content shown to the respondent, inputs collect an answer.
type FieldType int

const (
	// bubble 1->text 2->image 3->video 4->gif
	FieldTypeBubbleText FieldType = iota + 1
	FieldTypeImage
	FieldTypeVideo
	FieldTypeGif
	// input 5->text 6->number 7->email 8->phone 9->date 10->rating 11->button
	FieldTypeInputText
	FieldTypeNumber
	FieldTypeEmail
	FieldTypePhone
	FieldTypeDate
	FieldTypeRating
	FieldTypeButton
)

// RequiresValue reports whether a field of this type must carry non-empty
// content. Button is listed with the bubble content types upstream, so it
// keeps the requirement even though it is not a bubble.
func (t FieldType) RequiresValue() bool {
	switch t {
	case FieldTypeBubbleText, FieldTypeImage, FieldTypeVideo, FieldTypeGif, FieldTypeButton:
		return true
	}
	return false
}

const (
	ThemeLight = 1
	ThemeDark  = 2
	ThemeBlue  = 3
)

type Form struct {
	ID         string    `json:"id,omitempty"`
	Folder     string    `json:"folder,omitempty"`
	Creator    string    `json:"creator,omitempty"`
	Name       string    `json:"name"`
	Theme      int       `json:"theme"`
	Views      int       `json:"views"`
	Start      int       `json:"start"`
	End        int       `json:"end"`
	Fields     []Field   `json:"fields"`
	FirstInput string    `json:"firstInput,omitempty"`
	LastInput  string    `json:"lastInput,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

type Field struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"fieldName"`
	IsBubble  bool      `json:"isBubble"`
	Type      FieldType `json:"fieldType"`
	Value     string    `json:"fieldValue"`
	TypeCount int       `json:"fieldTypeCount"`
}

type Folder struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Creator string `json:"creator,omitempty"`
}

// FormResponse is the answers one session submitted to one form,
// keyed by field identity.
type FormResponse struct {
	FormID    string            `json:"form"`
	SessionID string            `json:"sessionId"`
	Data      map[string]string `json:"data"`
}

// FunnelHit reports which funnel counters a submission to the given field
// advances. Both are true for a single-input form.
func (f Form) FunnelHit(fieldID string) (incStart, incEnd bool) {
	incStart = f.FirstInput != "" && f.FirstInput == fieldID
	incEnd = f.LastInput != "" && f.LastInput == fieldID
	return
}

// InputBounds returns the identities of the first and last input fields in
// list order, or empty strings if the list has no input fields.
func InputBounds(fields []Field) (first, last string) {
	for _, f := range fields {
		if f.IsBubble {
			continue
		}
		if first == "" {
			first = f.ID
		}
		last = f.ID
	}
	return
}
