package pending

import (
	"fmt"

	"hrms/internal/domain/employee"
)

// Diff compares a requested update against the current record and returns
// only the fields whose normalized values actually differ, plus the current
// values of those same fields. Field names outside the employee registry
// are rejected rather than silently dropped. A field that is empty on both
// sides never counts as a change, whatever its spelling of empty.
func Diff(current *employee.Employee, requested map[string]any) (changes, original map[string]any, err error) {
	changes = map[string]any{}
	original = map[string]any{}

	for name, raw := range requested {
		field, ok := employee.LookupField(name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}

		newVal := field.Normalize(raw)
		oldVal := field.Normalize(field.Get(current))
		if newVal == oldVal {
			continue
		}
		if newVal == "" && oldVal == "" {
			continue
		}

		changes[field.Name] = newVal
		original[field.Name] = oldVal
	}

	if len(changes) == 0 {
		return nil, nil, ErrNoChangesDetected
	}
	return changes, original, nil
}
