package clientside

import "strings"

// Section is a horizontal band of a page made of columns.
type Section struct {
	page    *Page
	order   int
	columns []*Column
}

func newSection(page *Page, order int) *Section {
	return &Section{
		page:    page,
		order:   order,
		columns: make([]*Column, 0),
	}
}

// Page returns the owning page.
func (s *Section) Page() *Page {
	return s.page
}

// Order is the zone index written into rendered markup.
func (s *Section) Order() int {
	return s.order
}

// SetOrder overrides the zone index. Render order is unaffected.
func (s *Section) SetOrder(order int) {
	s.order = order
}

// Columns returns the columns in insertion order.
func (s *Section) Columns() []*Column {
	out := make([]*Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// DefaultColumn returns the first column, creating a full width one when the section is empty.
func (s *Section) DefaultColumn() *Column {
	if len(s.columns) == 0 {
		s.columns = append(s.columns, newColumn(s, 0))
	}
	return s.columns[0]
}

// AddColumn appends a full width column ordered after every existing column.
func (s *Section) AddColumn() *Column {
	column := newColumn(s, nextOrder(len(s.columns), func(i int) int { return s.columns[i].order }))
	s.columns = append(s.columns, column)
	return column
}

// RemoveColumn drops column from the section. Remaining orders are not renumbered.
func (s *Section) RemoveColumn(column *Column) bool {
	for i, existing := range s.columns {
		if existing == column {
			s.columns = append(s.columns[:i], s.columns[i+1:]...)
			return true
		}
	}
	return false
}

// AddControl adds control to the default column.
func (s *Section) AddControl(control Control) Control {
	return s.DefaultColumn().AddControl(control)
}

// ToHTML concatenates the markup of each column in insertion order.
func (s *Section) ToHTML() string {
	var b strings.Builder
	for _, column := range s.columns {
		b.WriteString(column.ToHTML())
	}
	return b.String()
}

// nextOrder returns max(order)+1 over n elements, or 0 when n is 0.
func nextOrder(n int, orderAt func(i int) int) int {
	if n == 0 {
		return 0
	}
	highest := orderAt(0)
	for i := 1; i < n; i++ {
		if o := orderAt(i); o > highest {
			highest = o
		}
	}
	return highest + 1
}
