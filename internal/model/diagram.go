package model

import "strings"

// Direction is the navigability of an association.
type Direction uint8

const (
	// DirAB navigates from ClassA to ClassB.
	DirAB Direction = iota
	// DirBA navigates from ClassB to ClassA.
	DirBA
	// DirBoth is bidirectional.
	DirBoth
)

func (d Direction) String() string {
	switch d {
	case DirAB:
		return "ab"
	case DirBA:
		return "ba"
	case DirBoth:
		return "both"
	}
	return "unknown"
}

// ParseDirection converts "ab", "ba" or "both" (also "bidirectional").
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ab", "a->b", "":
		return DirAB, true
	case "ba", "b->a":
		return DirBA, true
	case "both", "bidirectional", "a<->b":
		return DirBoth, true
	}
	return DirAB, false
}

// ManyMarker is the multiplicity wildcard that selects the collection form.
const ManyMarker = "*"

// AssocEnd is one end of an association.
type AssocEnd struct {
	Name         string
	Multiplicity string
}

// IsMany reports whether the end carries the wildcard marker. Numeric
// ranges without the wildcard count as single-valued.
func (e AssocEnd) IsMany() bool {
	return strings.Contains(e.Multiplicity, ManyMarker)
}

// Element is something placed on a class diagram.
type Element interface {
	element()
}

// ClassPlacement places a class on a diagram.
type ClassPlacement struct {
	Class *DesignClass
}

// InterfacePlacement places an interface on a diagram.
type InterfacePlacement struct {
	Interface *Interface
}

// Realization states that Class implements Interface.
type Realization struct {
	Class     *DesignClass
	Interface *Interface
}

// Generalization states that Sub extends Super.
type Generalization struct {
	Sub   *DesignClass
	Super *DesignClass
}

// Association links two classes.
type Association struct {
	ClassA    *DesignClass
	ClassB    *DesignClass
	EndA      AssocEnd
	EndB      AssocEnd
	Direction Direction
}

func (*ClassPlacement) element()     {}
func (*InterfacePlacement) element() {}
func (*Realization) element()        {}
func (*Generalization) element()     {}
func (*Association) element()        {}

// ClassDiagram is an ordered list of placed elements.
type ClassDiagram struct {
	Name     string
	Elements []Element
}
