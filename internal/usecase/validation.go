package usecase

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/backoffice/internal/domain/errors"
	"github.com/polkiloo/backoffice/internal/domain/model"
)

const (
	minPriority = 1
	maxPriority = 10
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct reports the first failing field as ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return domainErrors.NewValidationError(fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return domainErrors.NewValidationError("", err.Error())
}

// ValidateOrderForm checks required fields, price and priority. Once an order
// has left is_waiting its priority is mandatory.
func ValidateOrderForm(form model.OrderForm, status model.OrderStatus) error {
	if err := validateStruct(form); err != nil {
		return err
	}
	if err := validatePrice(form.Price); err != nil {
		return err
	}
	if form.Priority == "" {
		if status != "" && status != model.OrderStatusWaiting {
			return domainErrors.NewValidationError("priority", "required")
		}
		return nil
	}
	_, err := parsePriority(form.Priority)
	return err
}

// ValidatePipelineForm checks required pipeline fields.
func ValidatePipelineForm(form model.PipelineForm) error {
	return validateStruct(form)
}

func validatePrice(raw string) error {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return domainErrors.NewValidationError("price", "must be a number")
	}
	if price.IsNegative() {
		return domainErrors.NewValidationError("price", "must not be negative")
	}
	return nil
}

func parsePriority(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domainErrors.NewValidationError("priority", "must be an integer")
	}
	if err := checkPriority(n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkPriority(n int) error {
	if n < minPriority || n > maxPriority {
		return domainErrors.NewValidationError("priority", "must be between 1 and 10")
	}
	return nil
}
