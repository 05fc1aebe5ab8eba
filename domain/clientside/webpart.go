package clientside

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"sppages/domain/sharepoint"
)

// Well known web part ids.
const (
	WebPartIDEmbed = "490d7c76-1824-45b2-9de3-676421c997fa"
	WebPartIDImage = "d1d91016-032f-456d-98a4-721247c305e8"
)

// WebPartControl is a client side web part placed on the canvas.
type WebPartControl struct {
	BaseControl
	id          string
	webPartID   string
	title       string
	description string
	properties  json.RawMessage
	dataVersion string
}

// NewWebPart returns a web part instance of the component webPartID.
func NewWebPart(webPartID, title string) *WebPartControl {
	return &WebPartControl{
		id:          uuid.NewString(),
		webPartID:   webPartID,
		title:       title,
		properties:  json.RawMessage("{}"),
		dataVersion: DefaultDataVersion,
	}
}

type webPartManifest struct {
	ID                   string `json:"id"`
	Alias                string `json:"alias"`
	PreconfiguredEntries []struct {
		Title struct {
			Default string `json:"default"`
		} `json:"title"`
		Description struct {
			Default string `json:"default"`
		} `json:"description"`
		Properties json.RawMessage `json:"properties"`
	} `json:"preconfiguredEntries"`
}

// NewWebPartFromComponent builds a web part from a definition returned by
// GetClientSideWebParts, taking title, description and default properties from
// the first preconfigured entry of its manifest.
func NewWebPartFromComponent(component sharepoint.ClientSidePageComponent) (*WebPartControl, error) {
	var manifest webPartManifest
	if err := json.Unmarshal([]byte(component.Manifest), &manifest); err != nil {
		return nil, fmt.Errorf("%w: web part manifest %s: %v", sharepoint.ErrMalformedResponse, component.ID, err)
	}
	if manifest.ID == "" {
		manifest.ID = component.ID
	}
	if err := validation.ValidateStruct(&manifest,
		validation.Field(&manifest.ID, validation.Required),
		validation.Field(&manifest.PreconfiguredEntries, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: web part manifest %s: %v", sharepoint.ErrMalformedResponse, component.ID, err)
	}

	entry := manifest.PreconfiguredEntries[0]
	part := NewWebPart(manifest.ID, entry.Title.Default)
	part.description = entry.Description.Default
	if len(entry.Properties) > 0 {
		part.properties = entry.Properties
	}
	return part, nil
}

// ID returns the control instance id.
func (w *WebPartControl) ID() string {
	return w.id
}

// WebPartID returns the component id of the web part.
func (w *WebPartControl) WebPartID() string {
	return w.webPartID
}

// Title returns the web part title.
func (w *WebPartControl) Title() string {
	return w.title
}

// Description returns the web part description.
func (w *WebPartControl) Description() string {
	return w.description
}

// SetDescription sets the web part description.
func (w *WebPartControl) SetDescription(description string) {
	w.description = description
}

// Properties returns the raw web part properties.
func (w *WebPartControl) Properties() json.RawMessage {
	return w.properties
}

// SetProperties replaces the web part properties with the JSON encoding of v.
func (w *WebPartControl) SetProperties(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode web part properties: %w", err)
	}
	if !strings.HasPrefix(string(raw), "{") {
		return errors.New("web part properties must be a JSON object")
	}
	w.properties = raw
	return nil
}

type webPartControlData struct {
	ControlType int             `json:"controlType"`
	DisplayMode int             `json:"displayMode"`
	ID          string          `json:"id"`
	Position    controlPosition `json:"position"`
	WebPartID   string          `json:"webPartId"`
}

type webPartData struct {
	DataVersion string          `json:"dataVersion"`
	Description string          `json:"description"`
	ID          string          `json:"id"`
	InstanceID  string          `json:"instanceId"`
	Properties  json.RawMessage `json:"properties"`
	Title       string          `json:"title"`
}

// ToHTML renders the web part at index within its column.
func (w *WebPartControl) ToHTML(index int) string {
	control := webPartControlData{
		ControlType: controlTypeWebPart,
		DisplayMode: displayModeEdit,
		ID:          w.id,
		Position:    w.position(index),
		WebPartID:   w.webPartID,
	}
	data := webPartData{
		DataVersion: w.dataVersion,
		Description: w.description,
		ID:          w.webPartID,
		InstanceID:  w.id,
		Properties:  w.properties,
		Title:       w.title,
	}

	var b strings.Builder
	canvasControlOpen(&b, w.dataVersion, mustEscapeControlData(control))
	b.WriteString(`<div data-sp-webpart="" data-sp-webpartdataversion="`)
	b.WriteString(w.dataVersion)
	b.WriteString(`" data-sp-webpartdata="`)
	b.WriteString(mustEscapeControlData(data))
	b.WriteString(`"><div data-sp-componentid="">`)
	b.WriteString(w.webPartID)
	b.WriteString(`</div><div data-sp-htmlproperties=""></div></div></div>`)
	return b.String()
}
