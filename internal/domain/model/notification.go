package model

// Entity kinds referenced by notifications and in-flight keys.
const (
	EntityOrder    = "order"
	EntityPipeline = "pipeline"
)

// Outcome tags a finished status transition.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Notification is broadcast to connected admin clients after a transition resolves.
type Notification struct {
	Entity  string  `json:"entity"`
	ID      string  `json:"id"`
	Outcome Outcome `json:"outcome"`
	Status  string  `json:"status,omitempty"`
	Message string  `json:"message"`
}
