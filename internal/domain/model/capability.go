package model

// Capability names a permission held by an actor.
type Capability string

const (
	CapOrders               Capability = "orders"
	CapOrdersAdd            Capability = "orders_add"
	CapOrdersEdit           Capability = "orders_edit"
	CapOrdersDelete         Capability = "orders_delete"
	CapOrdersAccept         Capability = "orders_accept"
	CapOrdersChangeStatus   Capability = "orders_change_status"
	CapOrdersChangePriority Capability = "orders_change_priority"
	CapOrdersAddComment     Capability = "orders_add_comment"
	CapOrdersAddFile        Capability = "orders_add_file"

	CapPipelines                 Capability = "pipelines"
	CapPipelinesAdd              Capability = "pipelines_add"
	CapPipelinesEdit             Capability = "pipelines_edit"
	CapPipelinesChangeStatus     Capability = "pipelines_change_status"
	CapPipelinesSingleEdit       Capability = "pipelines_single_edit"
	CapPipelinesSingleAddComment Capability = "pipelines_single_add_comment"
	CapPipelinesSingleAddFile    Capability = "pipelines_single_add_file"
)

// CapabilitySet is an immutable lookup of held capabilities.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from capability names.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether the capability is held. A nil set holds nothing.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the held capabilities.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	return out
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID           string
	Capabilities CapabilitySet
}

// Can reports whether the actor holds the capability.
func (a Actor) Can(c Capability) bool {
	return a.Capabilities.Has(c)
}
