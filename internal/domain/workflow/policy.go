// Package workflow holds the order and pipeline status transition tables.
package workflow

import "github.com/polkiloo/backoffice/internal/domain/model"

// PayloadKind identifies extra input a transition needs besides the target status.
type PayloadKind string

const (
	PayloadNone     PayloadKind = ""
	PayloadPriority PayloadKind = "priority"
	PayloadContract PayloadKind = "contract"
)

// Transition is one row of a status table.
type Transition[S comparable] struct {
	From       S                `json:"from"`
	To         S                `json:"to"`
	Capability model.Capability `json:"capability,omitempty"`
	Payload    PayloadKind      `json:"payload,omitempty"`
	Label      string           `json:"label"`
	Icon       string           `json:"icon"`
}

// RequiresPayload reports whether the transition needs extra input.
func (t Transition[S]) RequiresPayload() bool {
	return t.Payload != PayloadNone
}

type (
	OrderTransition    = Transition[model.OrderStatus]
	PipelineTransition = Transition[model.PipelineStatus]
)

func orderRow(from, to model.OrderStatus, capability model.Capability, payload PayloadKind, label, icon string) OrderTransition {
	return OrderTransition{From: from, To: to, Capability: capability, Payload: payload, Label: label, Icon: icon}
}

// Rows for one source status are contiguous and in menu order.
var orderTable = []OrderTransition{
	orderRow(model.OrderStatusWaiting, model.OrderStatusAccepted, model.CapOrdersAccept, PayloadPriority, "common.status.accept", "done"),
	orderRow(model.OrderStatusWaiting, model.OrderStatusForEdit, model.CapOrdersChangeStatus, PayloadNone, "common.status.for_edit", "edit"),
	orderRow(model.OrderStatusWaiting, model.OrderStatusRejected, model.CapOrdersChangeStatus, PayloadNone, "common.status.reject", "close"),

	orderRow(model.OrderStatusAccepted, model.OrderStatusPaidByBankTransfer, model.CapOrdersChangeStatus, PayloadNone, "common.status.paid_by_bank_transfer", "account_balance"),
	orderRow(model.OrderStatusAccepted, model.OrderStatusPaidInCash, model.CapOrdersChangeStatus, PayloadNone, "common.status.paid_in_cash", "attach_money"),
	orderRow(model.OrderStatusAccepted, model.OrderStatusReadyToPickup, model.CapOrdersChangeStatus, PayloadNone, "common.status.ready_to_pickup", "business_center"),
	orderRow(model.OrderStatusAccepted, model.OrderStatusForEdit, model.CapOrdersChangeStatus, PayloadNone, "common.status.for_edit", "edit"),
	orderRow(model.OrderStatusAccepted, model.OrderStatusRejected, model.CapOrdersChangeStatus, PayloadNone, "common.status.reject", "close"),

	orderRow(model.OrderStatusForEdit, model.OrderStatusAccepted, model.CapOrdersAccept, PayloadPriority, "common.status.accept", "done"),

	orderRow(model.OrderStatusReadyToPickup, model.OrderStatusPaidByBankTransfer, model.CapOrdersChangeStatus, PayloadNone, "common.status.paid_by_bank_transfer", "account_balance"),
	orderRow(model.OrderStatusReadyToPickup, model.OrderStatusPaidInCash, model.CapOrdersChangeStatus, PayloadNone, "common.status.paid_in_cash", "attach_money"),
	orderRow(model.OrderStatusReadyToPickup, model.OrderStatusRejected, model.CapOrdersChangeStatus, PayloadNone, "common.status.reject", "close"),

	orderRow(model.OrderStatusRejected, model.OrderStatusAccepted, model.CapOrdersAccept, PayloadPriority, "common.status.accept", "done"),
	orderRow(model.OrderStatusRejected, model.OrderStatusForEdit, model.CapOrdersChangeStatus, PayloadNone, "common.status.for_edit", "edit"),
}

func pipelineRow(from, to model.PipelineStatus) PipelineTransition {
	row := PipelineTransition{
		From:       from,
		To:         to,
		Capability: model.CapPipelinesChangeStatus,
		Label:      "pipelineManagement.statuses." + to.String(),
		Icon:       pipelineIcons[to],
	}
	if to == model.PipelineStatusSignedContract {
		row.Payload = PayloadContract
	}
	return row
}

var pipelineIcons = map[model.PipelineStatus]string{
	model.PipelineStatusMeetingHeld:    "meeting_room",
	model.PipelineStatusNegotiations:   "work",
	model.PipelineStatusResignation:    "highlight_off",
	model.PipelineStatusSignedContract: "done",
}

// Targets are offered in ascending code order, never the current status.
var pipelineTable = []PipelineTransition{
	pipelineRow(model.PipelineStatusNew, model.PipelineStatusMeetingHeld),
	pipelineRow(model.PipelineStatusNew, model.PipelineStatusNegotiations),
	pipelineRow(model.PipelineStatusNew, model.PipelineStatusResignation),
	pipelineRow(model.PipelineStatusNew, model.PipelineStatusSignedContract),

	pipelineRow(model.PipelineStatusMeetingHeld, model.PipelineStatusNegotiations),
	pipelineRow(model.PipelineStatusMeetingHeld, model.PipelineStatusResignation),
	pipelineRow(model.PipelineStatusMeetingHeld, model.PipelineStatusSignedContract),

	pipelineRow(model.PipelineStatusNegotiations, model.PipelineStatusMeetingHeld),
	pipelineRow(model.PipelineStatusNegotiations, model.PipelineStatusResignation),
	pipelineRow(model.PipelineStatusNegotiations, model.PipelineStatusSignedContract),

	pipelineRow(model.PipelineStatusResignation, model.PipelineStatusMeetingHeld),
	pipelineRow(model.PipelineStatusResignation, model.PipelineStatusNegotiations),
	pipelineRow(model.PipelineStatusResignation, model.PipelineStatusSignedContract),
}

// OrderTransitions returns the legal transitions from status for an actor holding caps.
// Unknown statuses yield an empty list.
func OrderTransitions(status model.OrderStatus, caps model.CapabilitySet) []OrderTransition {
	out := make([]OrderTransition, 0, 5)
	for _, row := range orderTable {
		if row.From == status && caps.Has(row.Capability) {
			out = append(out, row)
		}
	}
	return out
}

// PipelineTransitions returns the legal transitions from status. The owner
// of the pipeline bypasses the status-change capability; signed contracts
// have no outgoing transitions for anyone.
func PipelineTransitions(status model.PipelineStatus, isOwner bool, caps model.CapabilitySet) []PipelineTransition {
	out := make([]PipelineTransition, 0, 4)
	if status.Terminal() {
		return out
	}
	if !isOwner && !caps.Has(model.CapPipelinesChangeStatus) {
		return out
	}
	for _, row := range pipelineTable {
		if row.From == status {
			out = append(out, row)
		}
	}
	return out
}

// Find returns the transition to target, if present.
func Find[S comparable](transitions []Transition[S], target S) (Transition[S], bool) {
	for _, t := range transitions {
		if t.To == target {
			return t, true
		}
	}
	return Transition[S]{}, false
}
