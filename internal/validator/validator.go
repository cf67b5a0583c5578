// Package validator provides the shared go-playground validator instance with
// the custom rules used by configuration and engine inputs.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/DASatizabal/personal-budget-manager-sub001/internal/errors"
)

var channelCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,8}$`)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the process-wide validator with all custom rules registered.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("channel_code", validateChannelCode)
		_ = v.RegisterValidation("day_code", validateDayCode)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("charge_frequency", validateChargeFrequency)
		_ = v.RegisterValidation("amount_type", validateAmountType)
		_ = v.RegisterValidation("min_payment_type", validateMinPaymentType)
		_ = v.RegisterValidation("split_type", validateSplitType)
		_ = v.RegisterValidation("db_driver", validateDBDriver)
		instance = v
	})
	return instance
}

// Struct validates s and converts validation failures into an INVALID_INPUT
// AppError listing every offending field.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, strings.Join(msgs, "; "))
}

func validateChannelCode(fl validator.FieldLevel) bool {
	return channelCodeRegex.MatchString(fl.Field().String())
}

// validateDayCode accepts calendar days 1..31 and the reserved schedule codes 991..999.
func validateDayCode(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return (d >= 1 && d <= 31) || (d >= 991 && d <= 999)
}

func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "CHECKING", "SAVINGS", "CASH":
		return true
	}
	return false
}

func validateChargeFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "MONTHLY", "BIWEEKLY", "WEEKLY", "YEARLY", "SPECIAL":
		return true
	}
	return false
}

func validateAmountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "FIXED", "CREDIT_CARD_BALANCE", "CALCULATED":
		return true
	}
	return false
}

func validateMinPaymentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "FIXED", "FULL_BALANCE", "CALCULATED":
		return true
	}
	return false
}

func validateSplitType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "HALF", "THIRD", "CUSTOM":
		return true
	}
	return false
}

func validateDBDriver(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "sqlite", "postgres":
		return true
	}
	return false
}
