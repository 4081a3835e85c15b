package model

import "strings"

// Visibility is the access level of a member.
type Visibility uint8

const (
	// VisPackage emits no access keyword.
	VisPackage Visibility = iota
	VisPublic
	VisProtected
	VisPrivate
)

// String returns the source keyword, empty for package visibility.
func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisProtected:
		return "protected"
	case VisPrivate:
		return "private"
	default:
		return ""
	}
}

// ParseVisibility accepts keywords and the UML sigils (+ # - ~).
func ParseVisibility(s string) (Visibility, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public", "+":
		return VisPublic, true
	case "protected", "#":
		return VisProtected, true
	case "private", "-":
		return VisPrivate, true
	case "", "package", "~":
		return VisPackage, true
	}
	return VisPackage, false
}

// Parameter is a typed, named method parameter.
type Parameter struct {
	Name string
	Type string
}

// Attribute is a field of a classifier.
type Attribute struct {
	Name       string
	Type       string
	Visibility Visibility
}

// Method is an operation declared on a classifier or synthesized from a trace.
type Method struct {
	Name       string
	Visibility Visibility
	ReturnType string
	Parameters []Parameter
}

// IsConstructorOf reports whether m is a constructor of the named class.
func (m *Method) IsConstructorOf(className string) bool {
	return m != nil && className != "" && m.Name == className
}

// ReturnsValue reports whether the method has a non-void return type.
func (m *Method) ReturnsValue() bool {
	if m == nil {
		return false
	}
	rt := strings.TrimSpace(m.ReturnType)
	return rt != "" && rt != "void"
}

// ClassifierInfo carries the fields shared by every classifier variant.
type ClassifierInfo struct {
	Name       string
	Stereotype string
}

// Info returns the shared classifier fields.
func (c *ClassifierInfo) Info() *ClassifierInfo { return c }

// Classifier is a class or an interface.
type Classifier interface {
	Info() *ClassifierInfo
	classifier()
}

// DesignClass is a concrete or abstract class.
type DesignClass struct {
	ClassifierInfo
	Attributes []*Attribute
	Methods    []*Method
	Extends    *DesignClass
	Implements []*Interface
}

// Interface is a pure interface classifier.
type Interface struct {
	ClassifierInfo
	Methods []*Method
}

func (*DesignClass) classifier() {}
func (*Interface) classifier()   {}

// NewClass returns a class with the given name.
func NewClass(name string) *DesignClass {
	return &DesignClass{ClassifierInfo: ClassifierInfo{Name: name}}
}

// NewInterface returns an interface with the given name.
func NewInterface(name string) *Interface {
	return &Interface{ClassifierInfo: ClassifierInfo{Name: name}}
}

// Attribute returns the explicit attribute with the given name.
func (c *DesignClass) Attribute(name string) *Attribute {
	if c == nil {
		return nil
	}
	for _, a := range c.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Method returns the explicit method with the given name.
func (c *DesignClass) Method(name string) *Method {
	if c == nil {
		return nil
	}
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// NameOf returns the classifier name, empty for nil.
func NameOf(c Classifier) string {
	switch c := c.(type) {
	case *DesignClass:
		if c != nil {
			return c.Name
		}
	case *Interface:
		if c != nil {
			return c.Name
		}
	}
	return ""
}

// MethodsOf returns the declared methods of either classifier variant.
func MethodsOf(c Classifier) []*Method {
	switch c := c.(type) {
	case *DesignClass:
		return c.Methods
	case *Interface:
		return c.Methods
	}
	return nil
}
