// Package model defines the structural and trace entities the generator
// consumes.
//
// # Structure
//
// Classifiers (DesignClass, Interface) own their attributes and methods.
// Class diagrams place classifiers and relate them through realizations,
// generalizations and associations. Sequence diagrams hold messages between
// roles (objects, multi-objects, actors, system instances), ordered by rank.
//
// # Variants
//
// Classifier, Element, Role and Message are sealed: only this package can
// add variants. Messages are dispatched through MessageVisitor, so adding a
// message kind breaks every visitor at compile time instead of falling
// through a type switch.
//
// Entities are treated as a read-only snapshot for the duration of a
// generation run. Derived, per-run state lives in internal/ir.
package model
