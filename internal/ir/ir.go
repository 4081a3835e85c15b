// Package ir holds the per-run intermediate representation attached to
// classifiers and methods.
//
// The IR never lives on the model entities. A Table maps classifier and
// method identity to their augmentation records; a fresh Table is built for
// every generation run and dropped afterwards, so nothing derived in one run
// can leak into the next.
package ir

import "modelgen/internal/model"

// DefaultReturnParam is the result identifier used until a ReturnMessage
// names it.
const DefaultReturnParam = "x"

// ClassIR augments a classifier with facts derived from diagrams and traces.
type ClassIR struct {
	Extends    *model.DesignClass
	Implements []*model.Interface
	// Methods synthesized from traces, in synthesis order.
	Methods []*model.Method
	// Attributes derived from associations, unique by name.
	Attributes []*model.Attribute
}

// Reset drops the inheritance facts gathered so far.
func (c *ClassIR) Reset() {
	c.Extends = nil
	c.Implements = c.Implements[:0]
}

// AddImplement appends iface unless it is already present.
func (c *ClassIR) AddImplement(iface *model.Interface) bool {
	if iface == nil {
		return false
	}
	for _, existing := range c.Implements {
		if existing == iface {
			return false
		}
	}
	c.Implements = append(c.Implements, iface)
	return true
}

// AddAttribute appends attr unless an attribute of the same name exists.
func (c *ClassIR) AddAttribute(attr *model.Attribute) bool {
	if attr == nil || c.Attribute(attr.Name) != nil {
		return false
	}
	c.Attributes = append(c.Attributes, attr)
	return true
}

// Attribute returns the derived attribute with the given name.
func (c *ClassIR) Attribute(name string) *model.Attribute {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Method returns the synthesized method with the given name.
func (c *ClassIR) Method(name string) *model.Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// AddMethod registers a synthesized method unless one with the same name exists.
func (c *ClassIR) AddMethod(m *model.Method) bool {
	if m == nil || c.Method(m.Name) != nil {
		return false
	}
	c.Methods = append(c.Methods, m)
	return true
}

// MethodIR augments a method with its synthesized body.
type MethodIR struct {
	Calls       []*Call
	Iterative   bool
	Reflective  bool
	Priority    int
	ReturnParam string
}

// AddCall appends a statement and returns its index.
func (m *MethodIR) AddCall(c *Call) int {
	m.Calls = append(m.Calls, c)
	return len(m.Calls) - 1
}

// CalledMethods renders the recorded statements in call order.
func (m *MethodIR) CalledMethods() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		out = append(out, c.String())
	}
	return out
}
