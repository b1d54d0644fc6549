package domain

import (
	"encoding/json"
	"fmt"
)

// AnswerSet holds every grammatically acceptable surface form for a blank.
// Croatian morphology legitimately admits multiple correct answers (case,
// aspect and word-order variants), so generators are instructed to emit an
// array; pre-authored worksheets may still use a bare string. On the wire
// the value is either a single JSON string or an array of strings.
type AnswerSet []string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = AnswerSet{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("correctAnswer must be a string or an array of strings: %w", err)
	}
	*a = AnswerSet(many)
	return nil
}

// MarshalJSON writes a bare string when only one form is acceptable and an
// array otherwise, mirroring the union shape consumers expect.
func (a AnswerSet) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}

// Contains reports whether the given form is one of the acceptable answers.
func (a AnswerSet) Contains(form string) bool {
	for _, v := range a {
		if v == form {
			return true
		}
	}
	return false
}
