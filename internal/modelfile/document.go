// Package modelfile reads models from TOML documents and msgpack snapshots
// and resolves them into a linked model.Project.
package modelfile

// Document is the on-disk form of a model. Classifiers and participants are
// referenced by name; Resolve links them into shared instances.
type Document struct {
	Project          ProjectDoc           `toml:"project" msgpack:"project"`
	Classes          []ClassDoc           `toml:"class" msgpack:"classes"`
	Interfaces       []InterfaceDoc       `toml:"interface" msgpack:"interfaces"`
	ClassDiagrams    []ClassDiagramDoc    `toml:"class_diagram" msgpack:"class_diagrams"`
	SequenceDiagrams []SequenceDiagramDoc `toml:"sequence_diagram" msgpack:"sequence_diagrams"`
}

type ProjectDoc struct {
	Name string `toml:"name" msgpack:"name"`
}

type ClassDoc struct {
	Name       string         `toml:"name" msgpack:"name"`
	Stereotype string         `toml:"stereotype" msgpack:"stereotype,omitempty"`
	Attributes []AttributeDoc `toml:"attribute" msgpack:"attributes,omitempty"`
	Methods    []MethodDoc    `toml:"method" msgpack:"methods,omitempty"`
}

type InterfaceDoc struct {
	Name       string      `toml:"name" msgpack:"name"`
	Stereotype string      `toml:"stereotype" msgpack:"stereotype,omitempty"`
	Methods    []MethodDoc `toml:"method" msgpack:"methods,omitempty"`
}

type AttributeDoc struct {
	Name       string `toml:"name" msgpack:"name"`
	Type       string `toml:"type" msgpack:"type"`
	Visibility string `toml:"visibility" msgpack:"visibility,omitempty"`
}

// MethodDoc lists parameters as "Type name" strings.
type MethodDoc struct {
	Name       string   `toml:"name" msgpack:"name"`
	Visibility string   `toml:"visibility" msgpack:"visibility,omitempty"`
	Return     string   `toml:"return" msgpack:"return,omitempty"`
	Params     []string `toml:"params" msgpack:"params,omitempty"`
}

type ClassDiagramDoc struct {
	Name     string       `toml:"name" msgpack:"name"`
	Elements []ElementDoc `toml:"element" msgpack:"elements,omitempty"`
}

// ElementDoc is one placed element. Kind selects which fields apply:
//
//	class           class
//	interface       interface
//	realization     class, interface
//	generalization  sub, super
//	association     a, b, role_a, role_b, mult_a, mult_b, direction
type ElementDoc struct {
	Kind      string `toml:"kind" msgpack:"kind"`
	Class     string `toml:"class" msgpack:"class,omitempty"`
	Interface string `toml:"interface" msgpack:"interface,omitempty"`
	Sub       string `toml:"sub" msgpack:"sub,omitempty"`
	Super     string `toml:"super" msgpack:"super,omitempty"`
	A         string `toml:"a" msgpack:"a,omitempty"`
	B         string `toml:"b" msgpack:"b,omitempty"`
	RoleA     string `toml:"role_a" msgpack:"role_a,omitempty"`
	RoleB     string `toml:"role_b" msgpack:"role_b,omitempty"`
	MultA     string `toml:"mult_a" msgpack:"mult_a,omitempty"`
	MultB     string `toml:"mult_b" msgpack:"mult_b,omitempty"`
	Direction string `toml:"direction" msgpack:"direction,omitempty"`
}

type SequenceDiagramDoc struct {
	Name         string           `toml:"name" msgpack:"name"`
	Participants []ParticipantDoc `toml:"participant" msgpack:"participants,omitempty"`
	Messages     []MessageDoc     `toml:"message" msgpack:"messages,omitempty"`
}

// ParticipantDoc kinds: object, multi, actor, system. Object and multi
// name the class they instantiate.
type ParticipantDoc struct {
	Name  string `toml:"name" msgpack:"name"`
	Kind  string `toml:"kind" msgpack:"kind"`
	Class string `toml:"class" msgpack:"class,omitempty"`
}

// MessageDoc kinds: create, call, destroy, return. From may be empty.
type MessageDoc struct {
	Kind       string   `toml:"kind" msgpack:"kind"`
	Rank       int64    `toml:"rank" msgpack:"rank"`
	From       string   `toml:"from" msgpack:"from,omitempty"`
	To         string   `toml:"to" msgpack:"to,omitempty"`
	Name       string   `toml:"name" msgpack:"name,omitempty"`
	Params     []string `toml:"params" msgpack:"params,omitempty"`
	Return     string   `toml:"return" msgpack:"return,omitempty"`
	Iterative  bool     `toml:"iterative" msgpack:"iterative,omitempty"`
	Reflective bool     `toml:"reflective" msgpack:"reflective,omitempty"`
}
