package pending

import (
	"log/slog"
	"sort"

	"hrms/internal/domain/employee"
)

// apply writes approved values onto the employee record through the field
// registry. Values that fail type coercion are skipped with a warning, not
// fatal: a bad year in an otherwise-valid approval still applies the rest.
func apply(e *employee.Employee, updates map[string]any) (applied, skipped []string) {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field, ok := employee.LookupField(name)
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		if err := field.Set(e, updates[name]); err != nil {
			slog.Warn("skipping uncoercible field value",
				"field", field.Name, "value", updates[name], "err", err)
			skipped = append(skipped, field.Name)
			continue
		}
		applied = append(applied, field.Name)
	}
	return applied, skipped
}
