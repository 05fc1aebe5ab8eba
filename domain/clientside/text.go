package clientside

import (
	"strings"

	"github.com/google/uuid"
)

const editorTypeCKEditor = "CKEditor"

// TextControl is a rich text block edited with the page's CKEditor.
type TextControl struct {
	BaseControl
	id          string
	text        string
	dataVersion string
}

// NewTextControl returns a text block holding text. Text not already wrapped in
// a paragraph is wrapped in one.
func NewTextControl(text string) *TextControl {
	t := &TextControl{
		id:          uuid.NewString(),
		dataVersion: DefaultDataVersion,
	}
	t.SetText(text)
	return t
}

// ID returns the control instance id.
func (t *TextControl) ID() string {
	return t.id
}

// Text returns the inner HTML.
func (t *TextControl) Text() string {
	return t.text
}

// SetText replaces the inner HTML.
func (t *TextControl) SetText(text string) {
	if !strings.HasPrefix(text, "<p>") {
		text = "<p>" + text + "</p>"
	}
	t.text = text
}

type textControlData struct {
	ControlType int             `json:"controlType"`
	DisplayMode int             `json:"displayMode"`
	ID          string          `json:"id"`
	Position    controlPosition `json:"position"`
	InnerHTML   string          `json:"innerHTML"`
	EditorType  string          `json:"editorType"`
}

// ToHTML renders the text block at index within its column.
func (t *TextControl) ToHTML(index int) string {
	data := textControlData{
		ControlType: controlTypeText,
		DisplayMode: displayModeEdit,
		ID:          t.id,
		Position:    t.position(index),
		InnerHTML:   t.text,
		EditorType:  editorTypeCKEditor,
	}

	var b strings.Builder
	canvasControlOpen(&b, t.dataVersion, mustEscapeControlData(data))
	b.WriteString(`<div data-sp-rte="">`)
	b.WriteString(t.text)
	b.WriteString("</div></div>")
	return b.String()
}
