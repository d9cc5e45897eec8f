package api

import (
	"fmt"
	"strconv"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validateMaxBytes unlike the max tag, which counts runes, limits the length of the field in bytes.
func validateMaxBytes(fl validator.FieldLevel) bool {
	maxBytes, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(str) <= maxBytes
}

// validateCardStatus accepts one of the card statuses or an empty value, which means the default status.
func validateCardStatus(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return str == "" || domain.CardStatusType(str).IsValid()
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validator registration: unexpected engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("max_bytes", validateMaxBytes); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	if err := v.RegisterValidation("card_status", validateCardStatus); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
