package calltrace

import (
	"cmp"
	"slices"
	"strings"

	"modelgen/internal/diag"
	"modelgen/internal/ir"
	"modelgen/internal/model"
	"modelgen/internal/naming"
)

// Focus is the lifeline state of a replay.
type Focus uint8

const (
	// NoFocus means no participant holds the focus of control.
	NoFocus Focus = iota
	// Focused means the head frame's owner holds the focus of control.
	Focused
)

func (f Focus) String() string {
	if f == Focused {
		return "focused"
	}
	return "no-focus"
}

// State is a snapshot of the replay state.
type State struct {
	Focus Focus
	Owner model.Role
	Depth int
}

// DestroyMethod is the name of the synthesized destructor.
const DestroyMethod = "destroy"

type frame struct {
	owner  model.Role
	class  *model.DesignClass
	method *model.Method
	body   *ir.MethodIR

	// call is the statement in the caller's body whose result the matching
	// return names; nil when there is nothing to rebind.
	call        *ir.Call
	callerClass *model.DesignClass

	// detached marks a body that is never emitted: a plain call on a
	// multi-object addresses the collection, not its element class.
	detached bool
}

// Compiler replays one sequence diagram into an IR table.
type Compiler struct {
	table   *ir.Table
	rep     diag.Reporter
	diagram string

	stack    []frame
	rank     int
	accepted bool
}

// New returns a compiler writing into table. rep may be nil.
func New(table *ir.Table, rep diag.Reporter, diagram string) *Compiler {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Compiler{table: table, rep: rep, diagram: diagram}
}

// Result summarizes a replay.
type Result struct {
	Accepted int
	Rejected int
}

// Compile replays every message of d in rank order.
func Compile(d *model.SequenceDiagram, table *ir.Table, rep diag.Reporter) Result {
	var res Result
	if d == nil {
		return res
	}
	c := New(table, rep, d.Name)
	for _, msg := range Order(d.Messages, c.rep, d.Name) {
		if c.Step(msg) {
			res.Accepted++
		} else {
			res.Rejected++
		}
	}
	return res
}

// Order returns the messages sorted by ascending rank. The sort is stable;
// equal ranks are reported.
func Order(msgs []model.Message, rep diag.Reporter, diagram string) []model.Message {
	out := make([]model.Message, 0, len(msgs))
	for _, m := range msgs {
		if m != nil {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Message) int {
		return cmp.Compare(a.Head().Rank, b.Head().Rank)
	})
	for i := 1; i < len(out); i++ {
		if r := out[i].Head().Rank; r == out[i-1].Head().Rank {
			diag.Warnf(rep, diag.TrcDuplicateRank, diag.AtRank(diagram, r), "rank %d is used by more than one message; diagram order kept", r)
		}
	}
	return out
}

// State reports the current focus.
func (c *Compiler) State() State {
	if len(c.stack) == 0 {
		return State{Focus: NoFocus}
	}
	return State{Focus: Focused, Owner: c.stack[len(c.stack)-1].owner, Depth: len(c.stack)}
}

// Step replays one message and reports whether it was accepted.
func (c *Compiler) Step(msg model.Message) bool {
	if msg == nil {
		return false
	}
	c.rank = msg.Head().Rank
	c.accepted = true
	msg.Accept(c)
	return c.accepted
}

func (c *Compiler) where() diag.Location {
	return diag.AtRank(c.diagram, c.rank)
}

func (c *Compiler) reject(code diag.Code, format string, args ...any) {
	c.accepted = false
	diag.Warnf(c.rep, code, c.where(), format, args...)
}

func (c *Compiler) head() *frame {
	if len(c.stack) == 0 {
		return nil
	}
	return &c.stack[len(c.stack)-1]
}

func (c *Compiler) push(f frame) {
	c.stack = append(c.stack, f)
}

// admit decides whether a message from src may run and whether its
// statement belongs to the head frame.
func (c *Compiler) admit(src model.Role) (ok, attach bool) {
	head := c.head()
	if src == nil || model.IsExternal(src) {
		if head != nil {
			c.reject(diag.TrcActorWhileFocus, "%s sends while %s holds the focus of control", roleLabel(src), roleLabel(head.owner))
			return false, false
		}
		return true, false
	}
	if head == nil {
		return true, false
	}
	if head.owner == src && head.body != nil {
		if head.detached {
			diag.Warnf(c.rep, diag.TrcDetachedBody, c.where(), "%s sends from inside a call on the collection; no statement is recorded", roleLabel(src))
			return true, false
		}
		return true, true
	}
	diag.Warnf(c.rep, diag.TrcForeignCaller, c.where(), "%s calls while %s holds the focus of control", roleLabel(src), roleLabel(head.owner))
	return true, false
}

// synthesize finds or creates the method name on cls. When register is
// false the method is kept out of the class IR.
func (c *Compiler) synthesize(cls *model.DesignClass, name string, params []model.Parameter, returnType string, register bool) (*model.Method, *ir.MethodIR) {
	rec := c.table.Class(cls)
	if register {
		if m := rec.Method(name); m != nil {
			return m, c.table.Method(m)
		}
	}
	m := &model.Method{
		Name:       name,
		Visibility: model.VisPublic,
		ReturnType: returnType,
		Parameters: slices.Clone(params),
	}
	if register {
		rec.AddMethod(m)
	}
	body := c.table.Method(m)
	body.Priority = c.rank
	return m, body
}

func (c *Compiler) VisitCreate(msg *model.CreateMessage) {
	cls := model.ClassOf(msg.Target)
	if cls == nil {
		c.reject(diag.TrcNoTarget, "create message has no class to construct")
		return
	}
	ok, attach := c.admit(msg.Source)
	if !ok {
		return
	}
	ctor, body := c.synthesize(cls, cls.Name, msg.Parameters, "", true)
	if attach {
		head := c.head()
		obj := objectName(msg.Target, cls)
		head.body.AddCall(&ir.Call{
			New:        true,
			Callee:     cls.Name,
			Args:       argNames(msg.Parameters),
			Result:     obj,
			ResultType: cls.Name,
			Declare:    !c.table.HasAttribute(head.class, obj),
		})
	}
	c.push(frame{owner: msg.Target, class: cls, method: ctor, body: body})
}

func (c *Compiler) VisitCall(msg *model.CallMessage) {
	if msg.Target == nil {
		c.reject(diag.TrcNoTarget, "call %q has no target", msg.Name)
		return
	}
	ok, attach := c.admit(msg.Source)
	if !ok {
		return
	}
	// A call is reflective when its sender is its target; the flag is only
	// checked against that.
	reflective := msg.Source != nil && msg.Source == msg.Target
	if msg.Reflective && !reflective {
		diag.Warnf(c.rep, diag.TrcReflectiveTarget, c.where(), "call %q is marked reflective but targets %s; replayed as an ordinary call", msg.Name, roleLabel(msg.Target))
	}

	cls := model.ClassOf(msg.Target)
	if cls == nil {
		diag.Warnf(c.rep, diag.TrcExternalTarget, c.where(), "call %q targets %s; nothing is generated for it", msg.Name, roleLabel(msg.Target))
		if !reflective {
			c.push(frame{owner: msg.Target})
		}
		return
	}

	_, isMulti := msg.Target.(*model.MultiObject)
	register := !isMulti || msg.Iterative
	method, body := c.synthesize(cls, msg.Name, msg.Parameters, msg.ReturnType, register)
	body.Iterative = body.Iterative || msg.Iterative
	body.Reflective = body.Reflective || reflective

	var (
		call        *ir.Call
		callerClass *model.DesignClass
	)
	if attach {
		head := c.head()
		callerClass = head.class
		call = c.callStatement(head, msg, cls, isMulti, reflective, body)
		head.body.AddCall(call)
		if call.Result == "" {
			call = nil
		}
	}
	if reflective {
		return
	}
	c.push(frame{
		owner:       msg.Target,
		class:       cls,
		method:      method,
		body:        body,
		call:        call,
		callerClass: callerClass,
		detached:    !register,
	})
}

func (c *Compiler) callStatement(head *frame, msg *model.CallMessage, cls *model.DesignClass, isMulti, reflective bool, body *ir.MethodIR) *ir.Call {
	call := &ir.Call{
		Callee: msg.Name,
		Args:   argNames(msg.Parameters),
	}
	switch {
	case reflective:
		call.Receiver = "this"
	case isMulti && msg.Iterative:
		call.Receiver = ir.LoopVar
	default:
		call.Receiver = objectName(msg.Target, cls)
	}
	if msg.ReturnsValue() {
		call.Result = body.ReturnParam
		call.ResultType = msg.ReturnType
		call.Declare = !c.table.HasAttribute(head.class, call.Result)
	}
	if msg.Iterative {
		if isMulti {
			call.Loop = ir.LoopEach
			call.ElemType = cls.Name
			call.Collection = objectName(msg.Target, cls)
		} else {
			call.Loop = ir.LoopFixed
		}
	}
	return call
}

func (c *Compiler) VisitDestroy(msg *model.DestroyMessage) {
	cls := model.ClassOf(msg.Target)
	if cls == nil {
		c.reject(diag.TrcNoTarget, "destroy message has no class to destroy")
		return
	}
	ok, attach := c.admit(msg.Source)
	if !ok {
		return
	}
	c.synthesize(cls, DestroyMethod, nil, "", true)
	if !attach {
		return
	}
	receiver := objectName(msg.Target, cls)
	if msg.Source == msg.Target {
		receiver = "this"
	}
	c.head().body.AddCall(&ir.Call{Receiver: receiver, Callee: DestroyMethod})
}

func (c *Compiler) VisitReturn(msg *model.ReturnMessage) {
	head := c.head()
	if head == nil {
		c.reject(diag.TrcOrphanReturn, "return %q has no open call", msg.Name)
		return
	}
	if name := strings.TrimSpace(msg.Name); name != "" {
		if head.body != nil {
			head.body.ReturnParam = name
		}
		if head.call != nil {
			head.call.Rebind(name, !c.table.HasAttribute(head.callerClass, name))
		}
	}
	c.stack = c.stack[:len(c.stack)-1]
}

func objectName(r model.Role, cls *model.DesignClass) string {
	if name := strings.TrimSpace(r.RoleName()); name != "" {
		return name
	}
	return naming.RoleName(cls.Name)
}

func argNames(params []model.Parameter) []string {
	if len(params) == 0 {
		return nil
	}
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, p.Name)
	}
	return out
}

func roleLabel(r model.Role) string {
	if r == nil {
		return "an unknown sender"
	}
	if name := r.RoleName(); name != "" {
		return name
	}
	if cls := model.ClassOf(r); cls != nil {
		return ":" + cls.Name
	}
	return "an unnamed participant"
}
