package scheduling

import (
	"errors"
	"fmt"
)

// Rule names the check a booking failed. It is returned to clients.
type Rule string

const (
	RulePastDate          Rule = "past_date"
	RuleWeekday           Rule = "weekday"
	RuleTimeWindow        Rule = "time_window"
	RuleSlotTaken         Rule = "slot_taken"
	RuleInvalidTransition Rule = "invalid_transition"

	RuleServiceUnavailable      Rule = "service_unavailable"
	RuleProfessionalUnavailable Rule = "professional_unavailable"
	RuleCategoryMismatch        Rule = "category_mismatch"
	RuleCategoryDisabled        Rule = "category_disabled"
)

var (
	// ErrSlotConflict is returned by a Store when the active slot index
	// rejects a write.
	ErrSlotConflict = errors.New("slot already booked")
	ErrNotFound     = errors.New("not found")
)

// ValidationError is a user-correctable rejection.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func reject(rule Rule, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// RuleOf returns the rule of a ValidationError in err's chain.
func RuleOf(err error) (Rule, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Rule, true
	}
	return "", false
}
