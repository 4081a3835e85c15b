package ir

import "modelgen/internal/model"

// Table is the side-table from model identity to IR records.
type Table struct {
	classes map[model.Classifier]*ClassIR
	methods map[*model.Method]*MethodIR
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		classes: make(map[model.Classifier]*ClassIR),
		methods: make(map[*model.Method]*MethodIR),
	}
}

// Class returns the IR of c, creating it on first use.
func (t *Table) Class(c model.Classifier) *ClassIR {
	if rec, ok := t.classes[c]; ok {
		return rec
	}
	rec := &ClassIR{}
	t.classes[c] = rec
	return rec
}

// LookupClass returns the IR of c or nil.
func (t *Table) LookupClass(c model.Classifier) *ClassIR {
	if t == nil {
		return nil
	}
	return t.classes[c]
}

// Method returns the IR of m, creating it on first use.
func (t *Table) Method(m *model.Method) *MethodIR {
	if rec, ok := t.methods[m]; ok {
		return rec
	}
	rec := &MethodIR{ReturnParam: DefaultReturnParam}
	t.methods[m] = rec
	return rec
}

// LookupMethod returns the IR of m or nil.
func (t *Table) LookupMethod(m *model.Method) *MethodIR {
	if t == nil {
		return nil
	}
	return t.methods[m]
}

// Attributes returns the explicit attributes of c followed by the derived
// ones whose names are not already declared.
func (t *Table) Attributes(c *model.DesignClass) []*model.Attribute {
	if c == nil {
		return nil
	}
	out := make([]*model.Attribute, 0, len(c.Attributes))
	seen := make(map[string]struct{}, len(c.Attributes))
	for _, a := range c.Attributes {
		out = append(out, a)
		seen[a.Name] = struct{}{}
	}
	if rec := t.LookupClass(c); rec != nil {
		for _, a := range rec.Attributes {
			if _, dup := seen[a.Name]; dup {
				continue
			}
			seen[a.Name] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// HasAttribute reports whether c declares or derives an attribute named name.
func (t *Table) HasAttribute(c *model.DesignClass, name string) bool {
	if c == nil || name == "" {
		return false
	}
	if c.Attribute(name) != nil {
		return true
	}
	rec := t.LookupClass(c)
	return rec != nil && rec.Attribute(name) != nil
}
