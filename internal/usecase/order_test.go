package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
	testhelpers "github.com/polkiloo/backoffice/internal/test"
)

func validOrderForm() model.OrderForm {
	return model.OrderForm{
		Name:          "Laptop",
		Description:   "14 inch",
		Price:         "3499.99",
		Currency:      "PLN",
		Project:       "pr1",
		OrderCategory: "it",
	}
}

func newOrderUseCase(orders ...model.Order) (*OrderUseCase, *testhelpers.GatewayStub, *testhelpers.OrderCacheStub) {
	gateway := &testhelpers.GatewayStub{}
	cache := testhelpers.NewOrderCacheStub(orders...)
	return NewOrderUseCase(gateway, cache, discardLogger()), gateway, cache
}

func TestOrderUseCaseListFiltersByStatus(t *testing.T) {
	accepted := waitingOrder("o2")
	accepted.Status = model.OrderStatusAccepted
	uc, _, _ := newOrderUseCase(waitingOrder("o1"), accepted)
	viewer := actor("v", model.CapOrders)

	all, err := uc.List(context.Background(), viewer, []string{"all"})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected both orders, got %v err=%v", all, err)
	}

	filtered, err := uc.List(context.Background(), viewer, []string{"accepted"})
	if err != nil || len(filtered) != 1 || filtered[0].ID != "o2" {
		t.Fatalf("unexpected filtered orders %v err=%v", filtered, err)
	}

	if _, err := uc.List(context.Background(), viewer, []string{"bogus"}); !domainErrors.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	if _, err := uc.List(context.Background(), actor("x"), nil); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestParseStatusFilter(t *testing.T) {
	got, err := ParseStatusFilter([]string{"is_waiting, rejected", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.OrderStatus{model.OrderStatusWaiting, model.OrderStatusRejected}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got, err := ParseStatusFilter([]string{"accepted", "all"}); err != nil || got != nil {
		t.Fatalf("expected all to disable filter, got %v err=%v", got, err)
	}
}

func TestOrderUseCaseGetRefreshesCache(t *testing.T) {
	uc, gateway, cache := newOrderUseCase()
	gateway.GetOrderFn = func(_ context.Context, id string) (*model.Order, error) {
		return &model.Order{ID: id, Status: model.OrderStatusAccepted, Priority: "2"}, nil
	}

	order, err := uc.Get(context.Background(), actor("v", model.CapOrders), "o5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached, ok := cache.Order("o5"); !ok || cached != *order {
		t.Fatalf("expected cache to hold fetched order, got %+v", cached)
	}
}

func TestOrderUseCaseAdd(t *testing.T) {
	uc, gateway, cache := newOrderUseCase()
	creator := actor("c", model.CapOrdersAdd)

	if _, err := uc.Add(context.Background(), actor("x"), validOrderForm()); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	withPriority := validOrderForm()
	withPriority.Priority = "3"
	if _, err := uc.Add(context.Background(), creator, withPriority); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden priority, got %v", err)
	}

	missing := validOrderForm()
	missing.Currency = ""
	var verr *domainErrors.ValidationError
	if _, err := uc.Add(context.Background(), creator, missing); !errors.As(err, &verr) || verr.Field != "currency" {
		t.Fatalf("expected currency validation error, got %v", err)
	}
	if gateway.TotalCalls() != 0 {
		t.Fatalf("expected no upstream calls, got %d", gateway.TotalCalls())
	}

	order, err := uc.Add(context.Background(), creator, validOrderForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusWaiting {
		t.Fatalf("expected new order to wait, got %s", order.Status)
	}
	if _, ok := cache.Order(order.ID); !ok {
		t.Fatal("expected created order to be cached")
	}
}

func TestOrderUseCaseUpdate(t *testing.T) {
	accepted := waitingOrder("o1")
	accepted.Status = model.OrderStatusAccepted
	accepted.Priority = "4"
	uc, gateway, cache := newOrderUseCase(accepted)
	gateway.UpdateOrderFn = func(_ context.Context, id string, form model.OrderForm) (*model.Order, error) {
		edited := accepted
		edited.ID = id
		edited.Name = form.Name
		edited.Priority = form.Priority
		return &edited, nil
	}
	editor := actor("e", model.CapOrdersEdit)

	form := validOrderForm()
	form.Name = "Desktop"
	order, err := uc.Update(context.Background(), editor, "o1", form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Name != "Desktop" || order.Priority != "4" || order.Status != model.OrderStatusAccepted {
		t.Fatalf("unexpected updated order %+v", order)
	}
	if cached, _ := cache.Order("o1"); cached.Name != "Desktop" {
		t.Fatalf("expected cache to be refreshed, got %+v", cached)
	}

	form.Priority = "9"
	if _, err := uc.Update(context.Background(), editor, "o1", form); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected priority change to be forbidden, got %v", err)
	}

	prioritizer := actor("p", model.CapOrdersEdit, model.CapOrdersChangePriority)
	form.Priority = "12"
	if _, err := uc.Update(context.Background(), prioritizer, "o1", form); !domainErrors.IsValidation(err) {
		t.Fatalf("expected priority range error, got %v", err)
	}
	form.Priority = "9"
	if order, err := uc.Update(context.Background(), prioritizer, "o1", form); err != nil || order.Priority != "9" {
		t.Fatalf("expected priority update, got %+v err=%v", order, err)
	}

	if gateway.Calls("UpdateOrder") != 2 {
		t.Fatalf("expected two upstream updates, got %d", gateway.Calls("UpdateOrder"))
	}
}

func TestOrderUseCaseUpdateSendsFormOnly(t *testing.T) {
	stale := waitingOrder("o1")
	stale.Priority = "3"
	uc, gateway, cache := newOrderUseCase(stale)

	var sentID string
	var sent model.OrderForm
	gateway.UpdateOrderFn = func(_ context.Context, id string, form model.OrderForm) (*model.Order, error) {
		sentID, sent = id, form
		return &model.Order{ID: id, Name: form.Name, Priority: form.Priority, Status: model.OrderStatusPaidInCash}, nil
	}

	form := validOrderForm()
	form.Name = "Monitor"
	order, err := uc.Update(context.Background(), actor("e", model.CapOrdersEdit), "o1", form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sentID != "o1" || sent.Name != "Monitor" || sent.Priority != "3" {
		t.Fatalf("unexpected upstream edit %q %+v", sentID, sent)
	}
	if order.Status != model.OrderStatusPaidInCash {
		t.Fatalf("expected upstream status to win, got %s", order.Status)
	}
	if cached, _ := cache.Order("o1"); cached.Status != model.OrderStatusPaidInCash {
		t.Fatalf("expected cache to hold upstream status, got %s", cached.Status)
	}
}

func TestOrderUseCaseUpdateRequiresPricingAfterDraft(t *testing.T) {
	accepted := waitingOrder("o1")
	accepted.Status = model.OrderStatusAccepted
	uc, _, _ := newOrderUseCase(accepted)

	var verr *domainErrors.ValidationError
	_, err := uc.Update(context.Background(), actor("e", model.CapOrdersEdit), "o1", validOrderForm())
	if !errors.As(err, &verr) || verr.Field != "priority" {
		t.Fatalf("expected missing priority error, got %v", err)
	}
}

func TestOrderUseCaseDelete(t *testing.T) {
	uc, gateway, cache := newOrderUseCase(waitingOrder("o1"), waitingOrder("o2"), waitingOrder("o3"))
	gateway.DeleteOrdersFn = func(_ context.Context, ids []string) ([]string, error) {
		return ids[:1], nil
	}
	deleter := actor("d", model.CapOrdersDelete)

	if _, err := uc.Delete(context.Background(), deleter, nil); !domainErrors.IsValidation(err) {
		t.Fatalf("expected validation error for empty ids, got %v", err)
	}

	deleted, err := uc.Delete(context.Background(), deleter, []string{"o1", "o2"})
	if err != nil || !reflect.DeepEqual(deleted, []string{"o1"}) {
		t.Fatalf("unexpected deleted ids %v err=%v", deleted, err)
	}
	if _, ok := cache.Order("o1"); ok {
		t.Fatal("expected confirmed order to be evicted")
	}
	if _, ok := cache.Order("o2"); !ok {
		t.Fatal("expected unconfirmed order to stay cached")
	}

	if _, err := uc.Delete(context.Background(), actor("x"), []string{"o3"}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestOrderUseCaseActions(t *testing.T) {
	uc, _, _ := newOrderUseCase(waitingOrder("o1"))

	actions, err := uc.Actions(context.Background(), orderAdmin, "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var targets []model.OrderStatus
	for _, a := range actions {
		targets = append(targets, a.To)
	}
	want := []model.OrderStatus{model.OrderStatusAccepted, model.OrderStatusForEdit, model.OrderStatusRejected}
	if !reflect.DeepEqual(targets, want) {
		t.Fatalf("expected %v, got %v", want, targets)
	}
}

func TestOrderUseCaseComments(t *testing.T) {
	uc, gateway, _ := newOrderUseCase()
	commenter := actor("u7", model.CapOrders, model.CapOrdersAddComment)

	if _, err := uc.AddComment(context.Background(), commenter, "o1", "  ", false); !domainErrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	comment, err := uc.AddComment(context.Background(), commenter, "o1", " call supplier ", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.Owner != "u7" || comment.Order != "o1" || comment.Comment != "call supplier" || !bool(comment.Private) {
		t.Fatalf("unexpected comment %+v", comment)
	}
	if _, err := uc.Comments(context.Background(), commenter, "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.AddComment(context.Background(), actor("x", model.CapOrders), "o1", "hi", false); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if gateway.Calls("AddOrderComment") != 1 {
		t.Fatalf("expected one comment call, got %d", gateway.Calls("AddOrderComment"))
	}
}

func TestOrderUseCaseFiles(t *testing.T) {
	uc, _, _ := newOrderUseCase()
	uploader := actor("u", model.CapOrders, model.CapOrdersAddFile)

	if _, err := uc.AddFile(context.Background(), uploader, "o1", model.FileUpload{Filename: "a.pdf"}); !domainErrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	file, err := uc.AddFile(context.Background(), uploader, "o1", model.FileUpload{Filename: "a.pdf", Description: "offer", Content: strings.NewReader("x")})
	if err != nil || file.FileDescription != "offer" {
		t.Fatalf("unexpected file %+v err=%v", file, err)
	}
	if _, err := uc.Files(context.Background(), uploader, "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.AddFile(context.Background(), actor("x"), "o1", model.FileUpload{}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestOrderUseCaseRefresh(t *testing.T) {
	uc, gateway, cache := newOrderUseCase(waitingOrder("stale"))
	gateway.ListOrdersFn = func(context.Context) ([]model.Order, error) {
		return []model.Order{waitingOrder("o1"), waitingOrder("o2")}, nil
	}

	n, err := uc.Refresh(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("unexpected refresh result %d err=%v", n, err)
	}
	if _, ok := cache.Order("stale"); ok {
		t.Fatal("expected stale order to be dropped")
	}

	gateway.ListOrdersFn = func(context.Context) ([]model.Order, error) {
		return nil, errors.New("upstream down")
	}
	if _, err := uc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if cache.Replaced != 1 {
		t.Fatalf("expected cache untouched on failure, replaced %d times", cache.Replaced)
	}
}
