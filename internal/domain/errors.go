package domain

import "errors"

// RuleError is a business-rule rejection: bad input, a permission denial or
// a state-machine guard. It is reported to clients as success=false with a
// translated message, never as a server failure.
type RuleError struct {
	Key  string
	Args []interface{}
}

func NewRuleError(key string, args ...interface{}) *RuleError {
	return &RuleError{Key: key, Args: args}
}

func (e *RuleError) Error() string {
	return e.Key
}

// Is matches rule errors by key so wrapped sentinels compare equal.
func (e *RuleError) Is(target error) bool {
	var other *RuleError
	if !errors.As(target, &other) {
		return false
	}
	return e.Key == other.Key
}

func IsRuleError(err error) bool {
	var ruleErr *RuleError
	return errors.As(err, &ruleErr)
}
