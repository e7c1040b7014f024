// Package validator registers the debt planner's binding tags with Gin.
//
// Currency codes use validator's built-in iso4217 tag. The tags added here:
//
//	payoff_strategy  a strategy id from the payoff catalogue, any case
//	cents            a money amount in cents between 0 and MaxCents
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"debtplanner/internal/payoff"
)

// MaxCents bounds every money field. Amounts above it lose cent precision
// once converted for simulation.
const MaxCents int64 = 1_000_000_000_000_000

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("payoff_strategy", validatePayoffStrategy)
		_ = v.RegisterValidation("cents", validateCents)
	}
}

// validatePayoffStrategy accepts the catalogue ids, case-insensitively.
// Optional fields should combine it with omitempty.
func validatePayoffStrategy(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := payoff.ParseStrategy(s)
	return err == nil
}

func validateCents(fl validator.FieldLevel) bool {
	if !fl.Field().CanInt() {
		return false
	}
	v := fl.Field().Int()
	return v >= 0 && v <= MaxCents
}
