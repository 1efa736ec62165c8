package validator

import "encoding/json"

// Violation is one failed rule.
type Violation struct {
	Rule    string `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`
}

// Outcome of validating one address. The zero value is a valid outcome.
type Outcome struct {
	Violations []Violation
}

// Valid reports whether no rule failed.
func (o Outcome) Valid() bool {
	return len(o.Violations) == 0
}

// Messages returns the violation messages in rule order, or nil when valid.
func (o Outcome) Messages() []string {
	if o.Valid() {
		return nil
	}
	msgs := make([]string, len(o.Violations))
	for i, v := range o.Violations {
		msgs[i] = v.Message
	}
	return msgs
}

// Equal reports whether both outcomes carry the same violations in the same order.
func (o Outcome) Equal(other Outcome) bool {
	if len(o.Violations) != len(other.Violations) {
		return false
	}
	for i := range o.Violations {
		if o.Violations[i] != other.Violations[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes a valid outcome as ValidMarker and an invalid one as
// its list of messages.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Valid() {
		return json.Marshal(ValidMarker)
	}
	return json.Marshal(o.Messages())
}
