package model

// Role is a participant of a sequence diagram.
type Role interface {
	RoleName() string
	role()
}

// SDObject is a single instance of a class.
type SDObject struct {
	Name  string
	Class *DesignClass
}

// MultiObject stands for a collection of instances of a class.
type MultiObject struct {
	Name  string
	Class *DesignClass
}

// ActorInstance is an external actor; no code is generated for it.
type ActorInstance struct {
	Name string
}

// SystemInstance is the system boundary; no code is generated for it.
type SystemInstance struct {
	Name string
}

func (r *SDObject) RoleName() string       { return r.Name }
func (r *MultiObject) RoleName() string    { return r.Name }
func (r *ActorInstance) RoleName() string  { return r.Name }
func (r *SystemInstance) RoleName() string { return r.Name }

func (*SDObject) role()       {}
func (*MultiObject) role()    {}
func (*ActorInstance) role()  {}
func (*SystemInstance) role() {}

// ClassOf returns the class a role instantiates, nil for actors and systems.
func ClassOf(r Role) *DesignClass {
	switch r := r.(type) {
	case *SDObject:
		if r != nil {
			return r.Class
		}
	case *MultiObject:
		if r != nil {
			return r.Class
		}
	}
	return nil
}

// IsExternal reports whether the role is an actor or a system instance.
func IsExternal(r Role) bool {
	switch r.(type) {
	case *ActorInstance, *SystemInstance:
		return true
	}
	return false
}

// Envelope carries the fields common to every message.
type Envelope struct {
	Source Role
	Target Role
	Rank   int
}

// Head returns the common message fields.
func (e *Envelope) Head() *Envelope { return e }

// MessageVisitor receives one callback per message variant.
type MessageVisitor interface {
	VisitCreate(*CreateMessage)
	VisitCall(*CallMessage)
	VisitDestroy(*DestroyMessage)
	VisitReturn(*ReturnMessage)
}

// Message is a rank-ordered event of a sequence diagram.
type Message interface {
	Head() *Envelope
	Accept(MessageVisitor)
}

// CreateMessage constructs its target.
type CreateMessage struct {
	Envelope
	Parameters []Parameter
}

// CallMessage invokes an operation on its target.
type CallMessage struct {
	Envelope
	Name       string
	Parameters []Parameter
	ReturnType string
	Iterative  bool
	Reflective bool
}

// DestroyMessage destroys its target.
type DestroyMessage struct {
	Envelope
}

// ReturnMessage closes the most recent call and names its result.
type ReturnMessage struct {
	Envelope
	Name string
}

func (m *CreateMessage) Accept(v MessageVisitor)  { v.VisitCreate(m) }
func (m *CallMessage) Accept(v MessageVisitor)    { v.VisitCall(m) }
func (m *DestroyMessage) Accept(v MessageVisitor) { v.VisitDestroy(m) }
func (m *ReturnMessage) Accept(v MessageVisitor)  { v.VisitReturn(m) }

// ReturnsValue reports whether the call declares a non-void result.
func (m *CallMessage) ReturnsValue() bool {
	return m != nil && m.ReturnType != "" && m.ReturnType != "void"
}

// SequenceDiagram is an unordered set of messages; Rank defines the order.
type SequenceDiagram struct {
	Name         string
	Participants []Role
	Messages     []Message
}
