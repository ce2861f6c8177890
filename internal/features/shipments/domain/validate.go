package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so messages match the API payloads.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"service_type": func(fl validator.FieldLevel) bool {
			return ServiceType(fl.Field().String()).IsValid()
		},
		"customs_status": func(fl validator.FieldLevel) bool {
			return CustomsStatus(fl.Field().String()).IsValid()
		},
		"shipment_status": func(fl validator.FieldLevel) bool {
			return Status(fl.Field().String()).IsValid()
		},
		"tracking_id": func(fl validator.FieldLevel) bool {
			return IsTrackingID(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// ValidateShipment checks every field rule of a complete shipment record.
func ValidateShipment(s *Shipment) error {
	if err := validate.Struct(s); err != nil {
		return validationError(err)
	}
	if s.ShipmentValue.IsNegative() {
		return fmt.Errorf("%w: shipment_value must not be negative", ErrValidation)
	}
	return nil
}

// ValidateEvent checks that a progress event carries its required text fields.
func ValidateEvent(ev ProgressEvent) error {
	if err := validate.Struct(ev); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "min":
		return field + " must contain at least " + fe.Param() + " entry"
	case "email":
		return field + " must be a valid email address"
	case "iso4217":
		return field + " must be an ISO 4217 currency code"
	case "tracking_id":
		return field + " must match PREFIX-YYYYMMDD-NNN"
	case "service_type":
		return field + " must be one of Standard, Express, Premium"
	case "customs_status":
		return field + " must be one of Cleared, On Hold"
	case "shipment_status":
		return field + " must be one of In Transit, Out for Delivery, Delivered, Exception"
	}
	return field + " is invalid"
}
