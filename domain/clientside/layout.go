package clientside

import (
	_ "embed"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed layout.schema.json
var layoutSchema string

var layoutSchemaLoader = gojsonschema.NewStringLoader(layoutSchema)

// Layout describes the canvas of a page as data. Documents are YAML or JSON.
//
//	sections:
//	  - columns:
//	      - factor: 8
//	        controls:
//	          - text: Welcome
//	      - factor: 4
//	        controls:
//	          - webPart: {id: 490d7c76-1824-45b2-9de3-676421c997fa, title: Embed}
type Layout struct {
	Sections []LayoutSection `yaml:"sections" json:"sections"`
}

// LayoutSection is one section of a Layout.
type LayoutSection struct {
	Columns []LayoutColumn `yaml:"columns" json:"columns"`
}

// LayoutColumn is one column of a LayoutSection. A nil Factor means full width.
type LayoutColumn struct {
	Factor   *int            `yaml:"factor" json:"factor,omitempty"`
	Controls []LayoutControl `yaml:"controls" json:"controls"`
}

// LayoutControl holds exactly one of Text or WebPart.
type LayoutControl struct {
	Text    string         `yaml:"text" json:"text,omitempty"`
	WebPart *LayoutWebPart `yaml:"webPart" json:"webPart,omitempty"`
}

// LayoutWebPart places a web part by component id.
type LayoutWebPart struct {
	ID          string         `yaml:"id" json:"id"`
	Title       string         `yaml:"title" json:"title,omitempty"`
	Description string         `yaml:"description" json:"description,omitempty"`
	Properties  map[string]any `yaml:"properties" json:"properties,omitempty"`
}

// Validate implements validation.Validatable.
func (w LayoutWebPart) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required, is.UUID),
	)
}

// ParseLayout decodes and validates a YAML or JSON layout document.
func ParseLayout(data []byte) (*Layout, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	result, err := gojsonschema.Validate(layoutSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidLayout, strings.Join(msgs, "; "))
	}

	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Validate checks factors and web part ids.
func (l *Layout) Validate() error {
	for si, section := range l.Sections {
		for ci, column := range section.Columns {
			if column.Factor != nil {
				if _, err := ParseColumnFactor(*column.Factor); err != nil {
					return fmt.Errorf("%w: section %d column %d: %w", ErrInvalidLayout, si, ci, err)
				}
			}
			for i, control := range column.Controls {
				if control.WebPart == nil {
					continue
				}
				if err := control.WebPart.Validate(); err != nil {
					return fmt.Errorf("%w: section %d column %d control %d: %v", ErrInvalidLayout, si, ci, i, err)
				}
			}
		}
	}
	return nil
}

// Apply appends the layout's sections to page.
func (l *Layout) Apply(page *Page) error {
	if err := l.Validate(); err != nil {
		return err
	}
	for _, ls := range l.Sections {
		section := page.AddSection()
		for i, lc := range ls.Columns {
			column := section.DefaultColumn()
			if i > 0 {
				column = section.AddColumn()
			}
			if lc.Factor != nil {
				if err := column.SetFactor(ColumnFactor(*lc.Factor)); err != nil {
					return err
				}
			}
			for _, control := range lc.Controls {
				if control.WebPart == nil {
					column.AddControl(NewTextControl(control.Text))
					continue
				}
				part := NewWebPart(control.WebPart.ID, control.WebPart.Title)
				part.SetDescription(control.WebPart.Description)
				if control.WebPart.Properties != nil {
					if err := part.SetProperties(control.WebPart.Properties); err != nil {
						return err
					}
				}
				column.AddControl(part)
			}
		}
	}
	return nil
}
