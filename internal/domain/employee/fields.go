package employee

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindDate
	KindBool
)

// Field describes one updatable employee attribute. The registry replaces
// runtime reflection: each entry carries its own typed getter, setter, and
// the normalization used for change detection.
type Field struct {
	Name string
	Kind FieldKind
	Get  func(e *Employee) any
	Set  func(e *Employee, raw any) error
}

var fields = []Field{
	{Name: "firstName", Kind: KindString,
		Get: func(e *Employee) any { return e.FirstName },
		Set: func(e *Employee, raw any) error { e.FirstName = asString(raw); return nil }},
	{Name: "lastName", Kind: KindString,
		Get: func(e *Employee) any { return e.LastName },
		Set: func(e *Employee, raw any) error { e.LastName = asString(raw); return nil }},
	{Name: "email", Kind: KindString,
		Get: func(e *Employee) any { return e.Email },
		Set: func(e *Employee, raw any) error { e.Email = asString(raw); return nil }},
	{Name: "phone", Kind: KindString,
		Get: func(e *Employee) any { return e.Phone },
		Set: func(e *Employee, raw any) error { e.Phone = asString(raw); return nil }},
	{Name: "address", Kind: KindString,
		Get: func(e *Employee) any { return e.Address },
		Set: func(e *Employee, raw any) error { e.Address = asString(raw); return nil }},
	{Name: "dateOfBirth", Kind: KindDate,
		Get: func(e *Employee) any { return e.DateOfBirth },
		Set: func(e *Employee, raw any) error { return setDate(&e.DateOfBirth, raw) }},
	{Name: "hireDate", Kind: KindDate,
		Get: func(e *Employee) any { return e.HireDate },
		Set: func(e *Employee, raw any) error { return setDate(&e.HireDate, raw) }},
	{Name: "yearGraduated", Kind: KindInt,
		Get: func(e *Employee) any { return e.YearGraduated },
		Set: func(e *Employee, raw any) error { return setInt(&e.YearGraduated, raw) }},
	{Name: "departmentId", Kind: KindInt,
		Get: func(e *Employee) any { return e.DepartmentID },
		Set: func(e *Employee, raw any) error { return setInt(&e.DepartmentID, raw) }},
	{Name: "positionId", Kind: KindInt,
		Get: func(e *Employee) any { return e.PositionID },
		Set: func(e *Employee, raw any) error { return setInt(&e.PositionID, raw) }},
	{Name: "status", Kind: KindString,
		Get: func(e *Employee) any { return e.Status },
		Set: func(e *Employee, raw any) error { e.Status = asString(raw); return nil }},
}

// LookupField is case-insensitive to tolerate clients sending PascalCase
// names carried over from older integrations.
func LookupField(name string) (Field, bool) {
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Normalize produces the canonical comparison string for a raw value of
// this field: dates become YYYY-MM-DD, integers their decimal form, and
// everything else a trimmed string. Empty and absent collapse to "".
func (f Field) Normalize(raw any) string {
	switch f.Kind {
	case KindDate:
		return NormalizeDate(raw)
	case KindInt:
		if n, ok := parseInt(raw); ok {
			return strconv.FormatInt(n, 10)
		}
		return strings.TrimSpace(asString(raw))
	case KindBool:
		if b, ok := parseBool(raw); ok {
			return strconv.FormatBool(b)
		}
		return strings.TrimSpace(asString(raw))
	default:
		return strings.TrimSpace(asString(raw))
	}
}

// Snapshot flattens the record through the registry, for change-log diffs.
func Snapshot(e *Employee) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Normalize(f.Get(e))
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// NormalizeDate renders any date-ish value as YYYY-MM-DD so differently
// formatted timestamps for the same calendar date compare equal. Values
// that fail to parse fall back to their trimmed string form.
func NormalizeDate(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format("2006-01-02")
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return ""
		}
		if t, ok := parseDateString(s); ok {
			return t.Format("2006-01-02")
		}
		return s
	default:
		return strings.TrimSpace(asString(raw))
	}
}

func parseDateString(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case int:
		return int64(v), true
	case int64:
		return v, true
	case *int64:
		if v == nil {
			return 0, false
		}
		return *v, true
	case float64:
		return int64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func parseBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

func asString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format("2006-01-02")
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a fraction so "3" and 3 compare equal.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *int64:
		if v == nil {
			return ""
		}
		return strconv.FormatInt(*v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func setDate(target **time.Time, raw any) error {
	switch v := raw.(type) {
	case nil:
		*target = nil
		return nil
	case time.Time:
		*target = &v
		return nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			*target = nil
			return nil
		}
		t, ok := parseDateString(s)
		if !ok {
			return fmt.Errorf("cannot parse %q as date", s)
		}
		*target = &t
		return nil
	default:
		return fmt.Errorf("cannot parse %T as date", raw)
	}
}

func setInt(target **int64, raw any) error {
	if raw == nil {
		*target = nil
		return nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		*target = nil
		return nil
	}
	n, ok := parseInt(raw)
	if !ok {
		return fmt.Errorf("cannot parse %v as integer", raw)
	}
	*target = &n
	return nil
}
