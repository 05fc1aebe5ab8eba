package clientside

// Control is a block rendered inside a canvas column.
// Implementations embed BaseControl, which binds them to their column.
type Control interface {
	// ToHTML renders the control at its 1-based position within the column.
	// It must be a pure function of the control's state and index.
	ToHTML(index int) string

	// Column returns the column the control was added to, or nil.
	Column() *Column

	bind(column *Column)
}

// BaseControl carries the non-owning column reference shared by all controls.
// Used on its own it renders nothing.
type BaseControl struct {
	column *Column
}

// Column returns the owning column.
func (b *BaseControl) Column() *Column {
	return b.column
}

func (b *BaseControl) bind(column *Column) {
	b.column = column
}

// ToHTML renders an empty string.
func (b *BaseControl) ToHTML(index int) string {
	return ""
}

// position resolves the control's canvas coordinates through the column and section references.
func (b *BaseControl) position(index int) controlPosition {
	pos := controlPosition{ControlIndex: index, SectionFactor: FactorFull}
	if b.column == nil {
		return pos
	}
	pos.SectionIndex = b.column.order
	pos.SectionFactor = b.column.factor
	if b.column.section != nil {
		pos.ZoneIndex = b.column.section.order
	}
	return pos
}
