package ir

import (
	"fmt"
	"strings"
)

// LoopKind selects the loop a call statement is wrapped in.
type LoopKind uint8

const (
	// LoopNone emits the statement as is.
	LoopNone LoopKind = iota
	// LoopFixed repeats the statement FixedLoopBound times.
	LoopFixed
	// LoopEach iterates the statement over every element of a collection.
	LoopEach
)

// FixedLoopBound is the iteration count of an iterative call on a single object.
const FixedLoopBound = 10

// LoopVar is the element variable of an element-wise loop.
const LoopVar = "obj"

// Call is one synthesized statement of a method body.
type Call struct {
	// Receiver is "this", a participant name or LoopVar. Empty for New.
	Receiver string
	// Callee is the method name, or the class name when New is set.
	Callee string
	Args   []string
	New    bool

	// Result binds the value of the call; empty means no binding.
	Result     string
	ResultType string
	// Declare prefixes Result with ResultType.
	Declare bool

	Loop       LoopKind
	ElemType   string
	Collection string
}

// Expr renders the call expression without binding or terminator.
func (c *Call) Expr() string {
	args := strings.Join(c.Args, ", ")
	if c.New {
		return "new " + c.Callee + "(" + args + ")"
	}
	if c.Receiver == "" {
		return c.Callee + "(" + args + ")"
	}
	return c.Receiver + "." + c.Callee + "(" + args + ")"
}

// Statement renders the terminated statement, including the result binding.
func (c *Call) Statement() string {
	if c.Result == "" {
		return c.Expr() + ";"
	}
	lhs := c.Result
	if c.Declare && c.ResultType != "" {
		lhs = c.ResultType + " " + c.Result
	}
	return lhs + " = " + c.Expr() + ";"
}

// LoopHeader returns the opening line of the wrapping loop, empty for LoopNone.
func (c *Call) LoopHeader() string {
	switch c.Loop {
	case LoopFixed:
		return fmt.Sprintf("for (int i = 0; i < %d; i++) {", FixedLoopBound)
	case LoopEach:
		return fmt.Sprintf("for (%s %s : %s) {", c.ElemType, LoopVar, c.Collection)
	}
	return ""
}

// Lines renders the statement with its loop wrapper. Nested lines are
// prefixed with indent; the caller indents the whole block.
func (c *Call) Lines(indent string) []string {
	header := c.LoopHeader()
	if header == "" {
		return []string{c.Statement()}
	}
	return []string{header, indent + c.Statement(), "}"}
}

// Fragment is the trailing call-target text a regenerated line must contain.
func (c *Call) Fragment() string {
	if c.New {
		return "new " + c.Callee + "("
	}
	return "." + c.Callee + "("
}

// String renders the call on one line.
func (c *Call) String() string {
	return strings.Join(c.Lines(""), " ")
}

// Rebind replaces the result identifier. declare controls whether the
// result type is re-emitted.
func (c *Call) Rebind(name string, declare bool) {
	if c == nil || c.Result == "" || name == "" {
		return
	}
	c.Result = name
	c.Declare = declare
}
