package models

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"storefront-api/internal/apperrors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// check runs the struct tags of v and converts failures into a
// ValidationError listing the offending json field paths.
func check(v any, message string) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(message)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		// drop the root type name
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, ns)
	}
	return apperrors.Validation(message, fields...)
}

// ValidateProduct normalises and checks a product before it is persisted.
func ValidateProduct(p *Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Subcategory = strings.TrimSpace(p.Subcategory)
	if p.Images == nil {
		p.Images = []string{}
	}
	return check(p, "Product validation failed")
}

func ValidateShippingAddress(a *ShippingAddress) error {
	if a == nil {
		return apperrors.Validation("Shipping address is required", "shippingAddress")
	}
	if err := check(a, "Please provide a complete shipping address"); err != nil {
		fields := apperrors.FieldsOf(err)
		for i := range fields {
			fields[i] = "shippingAddress." + fields[i]
		}
		return err
	}
	return nil
}

func ValidateContactMessage(m *ContactMessage) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	return check(m, "Please provide all required fields (name, email, subject, message)")
}

func ValidateUser(u *User) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)
	return check(u, "User validation failed")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParsePaymentMethod defaults to cash on delivery when empty.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case "":
		return PaymentCOD, nil
	case PaymentCOD, PaymentCard, PaymentUPI:
		return PaymentMethod(s), nil
	}
	return "", apperrors.Validation("Payment method must be one of COD, Card, UPI", "paymentMethod")
}

func ParseContactStatus(s string) (ContactStatus, error) {
	switch ContactStatus(s) {
	case ContactNew, ContactRead, ContactReplied:
		return ContactStatus(s), nil
	}
	return "", apperrors.Validation("Please provide a valid status (new, read, replied)", "status")
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", apperrors.Validation("Status must be one of Pending, Processing, Shipped, Delivered, Cancelled", "status")
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransitionTo reports whether the order lifecycle allows moving to target.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, s := range orderTransitions[o.Status] {
		if s == target {
			return true
		}
	}
	return false
}
