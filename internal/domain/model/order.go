package model

// OrderStatus describes order workflow state.
type OrderStatus string

const (
	OrderStatusWaiting            OrderStatus = "is_waiting"
	OrderStatusAccepted           OrderStatus = "accepted"
	OrderStatusForEdit            OrderStatus = "for_edit"
	OrderStatusRejected           OrderStatus = "rejected"
	OrderStatusReadyToPickup      OrderStatus = "ready_to_pickup"
	OrderStatusPaidByBankTransfer OrderStatus = "paid_by_bank_transfer"
	OrderStatusPaidInCash         OrderStatus = "paid_in_cash"
)

// OrderStatuses lists every known order status in workflow order.
var OrderStatuses = []OrderStatus{
	OrderStatusWaiting,
	OrderStatusAccepted,
	OrderStatusForEdit,
	OrderStatusRejected,
	OrderStatusReadyToPickup,
	OrderStatusPaidByBankTransfer,
	OrderStatusPaidInCash,
}

// Valid reports whether status is a known order status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is a purchase request tracked by the back office.
type Order struct {
	ID            string      `json:"id"`
	Owner         string      `json:"owner"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         string      `json:"price"`
	Currency      string      `json:"currency"`
	Priority      string      `json:"priority"`
	ProjectGroup  string      `json:"project_group,omitempty"`
	Project       string      `json:"project"`
	OrderCategory string      `json:"order_category"`
	Status        OrderStatus `json:"status"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at,omitempty"`
	OriginalPrice string      `json:"orginal_price,omitempty"`
	CurrencyName  string      `json:"currency_name,omitempty"`
	Email         string      `json:"email,omitempty"`
}

// OrderForm carries editable order fields.
type OrderForm struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Price         string `json:"price" validate:"required"`
	Currency      string `json:"currency" validate:"required"`
	Priority      string `json:"priority,omitempty"`
	Project       string `json:"project" validate:"required"`
	OrderCategory string `json:"order_category" validate:"required"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
}
