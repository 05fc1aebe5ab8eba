package clientside

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ColumnFactor is the width of a column in twelfths of the section.
type ColumnFactor int

const (
	FactorZero      ColumnFactor = 0
	FactorOneSixth  ColumnFactor = 2
	FactorOneThird  ColumnFactor = 4
	FactorHalf      ColumnFactor = 6
	FactorTwoThirds ColumnFactor = 8
	FactorFull      ColumnFactor = 12
)

var validFactors = []any{0, 2, 4, 6, 8, 12}

// Validate implements validation.Validatable.
func (f ColumnFactor) Validate() error {
	if err := validation.Validate(int(f), validation.In(validFactors...)); err != nil {
		return fmt.Errorf("%w: %d", ErrInvalidFactor, int(f))
	}
	return nil
}

// ParseColumnFactor converts an untrusted integer into a ColumnFactor.
func ParseColumnFactor(v int) (ColumnFactor, error) {
	f := ColumnFactor(v)
	if err := f.Validate(); err != nil {
		return 0, err
	}
	return f, nil
}

// Column is a vertical slot of a Section holding an ordered list of controls.
type Column struct {
	section     *Section
	order       int
	factor      ColumnFactor
	dataVersion string
	controls    []Control
}

func newColumn(section *Section, order int) *Column {
	return &Column{
		section:     section,
		order:       order,
		factor:      FactorFull,
		dataVersion: DefaultDataVersion,
		controls:    make([]Control, 0),
	}
}

// Section returns the owning section.
func (c *Column) Section() *Section {
	return c.section
}

// Order is the section index written into rendered markup.
func (c *Column) Order() int {
	return c.order
}

// SetOrder overrides the section index. Render order is unaffected.
func (c *Column) SetOrder(order int) {
	c.order = order
}

// Factor returns the column width in twelfths.
func (c *Column) Factor() ColumnFactor {
	return c.factor
}

// SetFactor changes the column width. Values outside {0,2,4,6,8,12} are rejected.
func (c *Column) SetFactor(f ColumnFactor) error {
	if err := f.Validate(); err != nil {
		return err
	}
	c.factor = f
	return nil
}

// DataVersion returns the canvas data version tag.
func (c *Column) DataVersion() string {
	return c.dataVersion
}

// SetDataVersion sets the canvas data version tag.
func (c *Column) SetDataVersion(v string) {
	c.dataVersion = v
}

// Controls returns the controls in insertion order.
func (c *Column) Controls() []Control {
	out := make([]Control, len(c.controls))
	copy(out, c.controls)
	return out
}

// AddControl binds control to the column and appends it. A control held by
// another column is moved.
func (c *Column) AddControl(control Control) Control {
	if previous := control.Column(); previous != nil {
		if previous == c {
			return control
		}
		previous.RemoveControl(control)
	}
	control.bind(c)
	c.controls = append(c.controls, control)
	return control
}

// RemoveControl detaches control from the column. It reports whether the control was found.
func (c *Column) RemoveControl(control Control) bool {
	for i, existing := range c.controls {
		if existing == control {
			c.controls = append(c.controls[:i], c.controls[i+1:]...)
			control.bind(nil)
			return true
		}
	}
	return false
}

type emptyColumnData struct {
	Position emptyColumnPosition `json:"Position"`
}

type emptyColumnPosition struct {
	ZoneIndex     int          `json:"ZoneIndex"`
	SectionIndex  int          `json:"SectionIndex"`
	SectionFactor ColumnFactor `json:"SectionFactor"`
}

// ToHTML renders the column. An empty column renders a placeholder block so the
// page renderer keeps its drop zone.
func (c *Column) ToHTML() string {
	var b strings.Builder

	if len(c.controls) == 0 {
		zone := 0
		if c.section != nil {
			zone = c.section.order
		}
		data := emptyColumnData{Position: emptyColumnPosition{
			ZoneIndex:     zone,
			SectionIndex:  c.order,
			SectionFactor: c.factor,
		}}
		canvasControlOpen(&b, c.dataVersion, mustEscapeControlData(data))
		b.WriteString("</div>")
		return b.String()
	}

	for i, control := range c.controls {
		b.WriteString(control.ToHTML(i + 1))
	}
	return b.String()
}
