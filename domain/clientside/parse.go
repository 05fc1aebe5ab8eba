package clientside

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/html"
)

const (
	attrCanvasControl     = "data-sp-canvascontrol"
	attrCanvasDataVersion = "data-sp-canvasdataversion"
	attrControlData       = "data-sp-controldata"
	attrRichText          = "data-sp-rte"
	attrWebPart           = "data-sp-webpart"
	attrWebPartData       = "data-sp-webpartdata"
)

type parsedPosition struct {
	ZoneIndex     int  `json:"zoneIndex"`
	SectionIndex  int  `json:"sectionIndex"`
	ControlIndex  int  `json:"controlIndex"`
	SectionFactor *int `json:"sectionFactor"`
}

type parsedControlData struct {
	ControlType int             `json:"controlType"`
	ID          string          `json:"id"`
	Position    *parsedPosition `json:"position"`
	InnerHTML   string          `json:"innerHTML"`
	WebPartID   string          `json:"webPartId"`
}

type columnKey struct {
	zone    int
	section int
}

// canvasBuilder groups parsed blocks into sections and columns in order of first appearance.
type canvasBuilder struct {
	sections []*Section
	zones    map[int]*Section
	columns  map[columnKey]*Column
	errs     *multierror.Error
}

// ParseCanvas rebuilds the section tree from CanvasContent1 markup.
// Blocks that cannot be understood are skipped and reported together in the
// returned error; the sections built from the remaining blocks are still returned.
func ParseCanvas(markup string) ([]*Section, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse canvas markup: %w", err)
	}

	b := &canvasBuilder{
		sections: make([]*Section, 0),
		zones:    make(map[int]*Section),
		columns:  make(map[columnKey]*Column),
	}
	b.walk(doc)
	return b.sections, b.errs.ErrorOrNil()
}

func (b *canvasBuilder) walk(n *html.Node) {
	if n.Type == html.ElementNode && hasAttr(n, attrCanvasControl) {
		if err := b.addBlock(n); err != nil {
			b.errs = multierror.Append(b.errs, err)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
}

func (b *canvasBuilder) addBlock(n *html.Node) error {
	version := attr(n, attrCanvasDataVersion)
	if version == "" {
		version = DefaultDataVersion
	}

	// the tokenizer has already decoded entities in attribute values
	raw := attr(n, attrControlData)
	var data parsedControlData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return fmt.Errorf("canvas block: decode control data: %w", err)
	}

	if data.ControlType == 0 {
		var empty emptyColumnData
		if err := json.Unmarshal([]byte(raw), &empty); err != nil {
			return fmt.Errorf("canvas block: decode column data: %w", err)
		}
		_, err := b.column(empty.Position.ZoneIndex, empty.Position.SectionIndex, int(empty.Position.SectionFactor), version)
		return err
	}

	if data.Position == nil {
		return fmt.Errorf("canvas control %s: missing position", data.ID)
	}
	factor := int(FactorFull)
	if data.Position.SectionFactor != nil {
		factor = *data.Position.SectionFactor
	}
	column, err := b.column(data.Position.ZoneIndex, data.Position.SectionIndex, factor, version)
	if err != nil {
		return fmt.Errorf("canvas control %s: %w", data.ID, err)
	}

	switch data.ControlType {
	case controlTypeText:
		text := data.InnerHTML
		if text == "" {
			if rte := findChild(n, attrRichText); rte != nil {
				text = innerHTML(rte)
			}
		}
		column.AddControl(&TextControl{id: data.ID, text: text, dataVersion: version})
	case controlTypeWebPart:
		part, err := parseWebPart(n, data, version)
		if err != nil {
			return err
		}
		column.AddControl(part)
	default:
		return fmt.Errorf("canvas control %s: unsupported control type %d", data.ID, data.ControlType)
	}
	return nil
}

func parseWebPart(n *html.Node, data parsedControlData, version string) (*WebPartControl, error) {
	part := &WebPartControl{
		id:          data.ID,
		webPartID:   data.WebPartID,
		properties:  json.RawMessage("{}"),
		dataVersion: version,
	}
	node := findChild(n, attrWebPart)
	if node == nil {
		return part, nil
	}
	var wp webPartData
	if err := json.Unmarshal([]byte(attr(node, attrWebPartData)), &wp); err != nil {
		return nil, fmt.Errorf("web part %s: decode web part data: %w", data.ID, err)
	}
	if part.webPartID == "" {
		part.webPartID = wp.ID
	}
	part.title = wp.Title
	part.description = wp.Description
	if len(wp.Properties) > 0 {
		part.properties = wp.Properties
	}
	return part, nil
}

func (b *canvasBuilder) column(zone, sectionIndex, factor int, version string) (*Column, error) {
	f, err := ParseColumnFactor(factor)
	if err != nil {
		return nil, err
	}

	key := columnKey{zone: zone, section: sectionIndex}
	if column, ok := b.columns[key]; ok {
		return column, nil
	}

	section, ok := b.zones[zone]
	if !ok {
		section = newSection(nil, zone)
		b.zones[zone] = section
		b.sections = append(b.sections, section)
	}
	column := newColumn(section, sectionIndex)
	column.factor = f
	column.dataVersion = version
	section.columns = append(section.columns, column)
	b.columns[key] = column
	return column, nil
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findChild(n *html.Node, key string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasAttr(c, key) {
			return c
		}
	}
	return nil
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}
