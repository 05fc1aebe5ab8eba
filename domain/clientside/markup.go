package clientside

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultDataVersion is the canvas data schema version written into markup.
const DefaultDataVersion = "1.0"

var (
	controlDataEscaper = strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		":", "&#58;",
		"{", "&#123;",
		"}", "&#125;",
		"<", "&lt;",
		">", "&gt;",
	)
	controlDataUnescaper = strings.NewReplacer(
		"&quot;", `"`,
		"&#58;", ":",
		"&#123;", "{",
		"&#125;", "}",
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	)
)

// EscapeControlData JSON-encodes v and escapes it for use inside a
// data-sp-controldata or data-sp-webpartdata attribute.
func EscapeControlData(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode control data: %w", err)
	}
	return controlDataEscaper.Replace(strings.TrimSuffix(buf.String(), "\n")), nil
}

// UnescapeControlData reverses EscapeControlData and decodes the JSON into v.
func UnescapeControlData(s string, v any) error {
	if err := json.Unmarshal([]byte(controlDataUnescaper.Replace(s)), v); err != nil {
		return fmt.Errorf("decode control data: %w", err)
	}
	return nil
}

// mustEscapeControlData is used by renderers whose payloads are built only from
// JSON-safe values (strings, ints, json.RawMessage validated on input).
func mustEscapeControlData(v any) string {
	s, err := EscapeControlData(v)
	if err != nil {
		panic(err)
	}
	return s
}

// canvasControlOpen writes the opening tag shared by every rendered canvas block.
func canvasControlOpen(b *strings.Builder, dataVersion, escapedData string) {
	b.WriteString(`<div data-sp-canvascontrol="" data-sp-canvasdataversion="`)
	b.WriteString(dataVersion)
	b.WriteString(`" data-sp-controldata="`)
	b.WriteString(escapedData)
	b.WriteString(`">`)
}

// controlPosition locates a control on the canvas.
type controlPosition struct {
	ZoneIndex     int          `json:"zoneIndex"`
	SectionIndex  int          `json:"sectionIndex"`
	ControlIndex  int          `json:"controlIndex"`
	SectionFactor ColumnFactor `json:"sectionFactor"`
}

// Canvas control types understood by the page renderer.
const (
	controlTypeWebPart = 3
	controlTypeText    = 4
)

// displayModeEdit is the display mode written for new controls.
const displayModeEdit = 2
