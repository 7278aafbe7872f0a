package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/backoffice/internal/domain/model"
)

var allOrderCaps = model.NewCapabilitySet(model.CapOrdersAccept, model.CapOrdersChangeStatus)

func orderTargets(ts []OrderTransition) []model.OrderStatus {
	out := make([]model.OrderStatus, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.To)
	}
	return out
}

func pipelineTargets(ts []PipelineTransition) []model.PipelineStatus {
	out := make([]model.PipelineStatus, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.To)
	}
	return out
}

func TestOrderTransitionsExactOrdering(t *testing.T) {
	cases := []struct {
		from model.OrderStatus
		want []model.OrderStatus
	}{
		{model.OrderStatusWaiting, []model.OrderStatus{model.OrderStatusAccepted, model.OrderStatusForEdit, model.OrderStatusRejected}},
		{model.OrderStatusAccepted, []model.OrderStatus{
			model.OrderStatusPaidByBankTransfer,
			model.OrderStatusPaidInCash,
			model.OrderStatusReadyToPickup,
			model.OrderStatusForEdit,
			model.OrderStatusRejected,
		}},
		{model.OrderStatusForEdit, []model.OrderStatus{model.OrderStatusAccepted}},
		{model.OrderStatusReadyToPickup, []model.OrderStatus{model.OrderStatusPaidByBankTransfer, model.OrderStatusPaidInCash, model.OrderStatusRejected}},
		{model.OrderStatusRejected, []model.OrderStatus{model.OrderStatusAccepted, model.OrderStatusForEdit}},
		{model.OrderStatusPaidByBankTransfer, []model.OrderStatus{}},
		{model.OrderStatusPaidInCash, []model.OrderStatus{}},
	}

	for _, tc := range cases {
		t.Run(string(tc.from), func(t *testing.T) {
			assert.Equal(t, tc.want, orderTargets(OrderTransitions(tc.from, allOrderCaps)))
		})
	}
}

func TestOrderTransitionsCapabilityFiltering(t *testing.T) {
	acceptOnly := model.NewCapabilitySet(model.CapOrdersAccept)
	assert.Equal(t, []model.OrderStatus{model.OrderStatusAccepted}, orderTargets(OrderTransitions(model.OrderStatusWaiting, acceptOnly)))

	changeOnly := model.NewCapabilitySet(model.CapOrdersChangeStatus)
	assert.Equal(t, []model.OrderStatus{model.OrderStatusForEdit, model.OrderStatusRejected}, orderTargets(OrderTransitions(model.OrderStatusWaiting, changeOnly)))

	assert.Empty(t, OrderTransitions(model.OrderStatusAccepted, nil))
	assert.Empty(t, OrderTransitions(model.OrderStatusForEdit, changeOnly))
}

func TestOrderTransitionsAcceptCarriesPriorityPayload(t *testing.T) {
	transitions := OrderTransitions(model.OrderStatusWaiting, allOrderCaps)
	require.Len(t, transitions, 3)

	assert.Equal(t, PayloadPriority, transitions[0].Payload)
	assert.True(t, transitions[0].RequiresPayload())
	assert.Equal(t, "common.status.accept", transitions[0].Label)
	assert.Equal(t, model.CapOrdersAccept, transitions[0].Capability)

	for _, tr := range transitions[1:] {
		assert.False(t, tr.RequiresPayload(), "unexpected payload for %s", tr.To)
	}
}

func TestOrderTransitionsTerminalRegardlessOfCapabilities(t *testing.T) {
	everything := model.NewCapabilitySet(
		model.CapOrdersAccept, model.CapOrdersChangeStatus, model.CapOrdersEdit,
		model.CapOrdersChangePriority, model.CapOrdersDelete,
	)
	assert.Empty(t, OrderTransitions(model.OrderStatusPaidByBankTransfer, everything))
	assert.Empty(t, OrderTransitions(model.OrderStatusPaidInCash, everything))
}

func TestOrderTransitionsUnknownStatus(t *testing.T) {
	got := OrderTransitions(model.OrderStatus("archived"), allOrderCaps)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTransitionsNeverReentrant(t *testing.T) {
	for _, status := range model.OrderStatuses {
		for _, tr := range OrderTransitions(status, allOrderCaps) {
			assert.NotEqual(t, status, tr.To)
		}
	}
	for code := model.PipelineStatusNew; code <= model.PipelineStatusSignedContract; code++ {
		for _, tr := range PipelineTransitions(code, true, nil) {
			assert.NotEqual(t, code, tr.To)
		}
	}
}

func TestPipelineTransitionsExactOrdering(t *testing.T) {
	caps := model.NewCapabilitySet(model.CapPipelinesChangeStatus)
	cases := []struct {
		from model.PipelineStatus
		want []model.PipelineStatus
	}{
		{model.PipelineStatusNew, []model.PipelineStatus{2, 3, 4, 5}},
		{model.PipelineStatusMeetingHeld, []model.PipelineStatus{3, 4, 5}},
		{model.PipelineStatusNegotiations, []model.PipelineStatus{2, 4, 5}},
		{model.PipelineStatusResignation, []model.PipelineStatus{2, 3, 5}},
		{model.PipelineStatusSignedContract, []model.PipelineStatus{}},
		{model.PipelineStatus(0), []model.PipelineStatus{}},
		{model.PipelineStatus(42), []model.PipelineStatus{}},
	}

	for _, tc := range cases {
		t.Run(tc.from.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, pipelineTargets(PipelineTransitions(tc.from, false, caps)))
		})
	}
}

func TestPipelineTransitionsOwnerBypass(t *testing.T) {
	got := PipelineTransitions(model.PipelineStatusNegotiations, true, model.NewCapabilitySet())
	assert.Equal(t, []model.PipelineStatus{2, 4, 5}, pipelineTargets(got))

	assert.Empty(t, PipelineTransitions(model.PipelineStatusNegotiations, false, model.NewCapabilitySet(model.CapPipelinesEdit)))
}

func TestPipelineTransitionsSignedContractIsTerminal(t *testing.T) {
	caps := model.NewCapabilitySet(model.CapPipelinesChangeStatus, model.CapPipelinesEdit)
	assert.Empty(t, PipelineTransitions(model.PipelineStatusSignedContract, true, caps))
	assert.Empty(t, PipelineTransitions(model.PipelineStatusSignedContract, false, caps))
}

func TestPipelineTransitionsContractPayloadAndLabels(t *testing.T) {
	got := PipelineTransitions(model.PipelineStatusMeetingHeld, true, nil)
	require.Len(t, got, 3)

	assert.Equal(t, PayloadNone, got[0].Payload)
	assert.Equal(t, "pipelineManagement.statuses.negotiations", got[0].Label)
	assert.Equal(t, "work", got[0].Icon)

	last := got[2]
	assert.Equal(t, model.PipelineStatusSignedContract, last.To)
	assert.Equal(t, PayloadContract, last.Payload)
	assert.Equal(t, "pipelineManagement.statuses.signed_contract", last.Label)
}

func TestPolicyIsPure(t *testing.T) {
	first := OrderTransitions(model.OrderStatusAccepted, allOrderCaps)
	first[0].To = model.OrderStatusRejected
	second := OrderTransitions(model.OrderStatusAccepted, allOrderCaps)
	assert.Equal(t, model.OrderStatusPaidByBankTransfer, second[0].To)
	assert.Equal(t, OrderTransitions(model.OrderStatusAccepted, allOrderCaps), second)

	p1 := PipelineTransitions(model.PipelineStatusNew, true, nil)
	p2 := PipelineTransitions(model.PipelineStatusNew, true, nil)
	assert.Equal(t, p1, p2)
}

func TestFind(t *testing.T) {
	transitions := OrderTransitions(model.OrderStatusWaiting, allOrderCaps)

	tr, ok := Find(transitions, model.OrderStatusRejected)
	require.True(t, ok)
	assert.Equal(t, "close", tr.Icon)

	_, ok = Find(transitions, model.OrderStatusPaidInCash)
	assert.False(t, ok)

	_, ok = Find([]PipelineTransition(nil), model.PipelineStatusMeetingHeld)
	assert.False(t, ok)
}
