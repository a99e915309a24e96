package pending

import (
	"errors"
	"testing"
	"time"

	"hrms/internal/domain/employee"
)

func sampleEmployee() *employee.Employee {
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	year := int64(2012)
	return &employee.Employee{
		EmployeeID:    7,
		FirstName:     "Maria",
		LastName:      "Santos",
		Email:         "maria@example.com",
		Phone:         "555-0100",
		DateOfBirth:   &dob,
		YearGraduated: &year,
		Status:        "active",
	}
}

func TestDiffDetectsOnlyRealChanges(t *testing.T) {
	requested := map[string]any{
		"firstName": "Maria",                // identical
		"lastName":  "  Santos  ",           // identical after trim
		"phone":     "555-0199",             // changed
		"email":     "m.santos@example.com", // changed
	}

	changes, original, err := Diff(sampleEmployee(), requested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %v", len(changes), changes)
	}
	if changes["phone"] != "555-0199" || original["phone"] != "555-0100" {
		t.Fatalf("phone change not captured: %v / %v", changes, original)
	}
	if _, ok := changes["firstName"]; ok {
		t.Fatal("identical value must not be flagged as a change")
	}
}

func TestDiffNormalizesDatesAndNumbers(t *testing.T) {
	// Same birth date in a different format and the same graduation year
	// as a JSON number: neither is a change.
	requested := map[string]any{
		"dateOfBirth":   "1990-04-12T00:00:00",
		"yearGraduated": float64(2012),
	}
	if _, _, err := Diff(sampleEmployee(), requested); !errors.Is(err, ErrNoChangesDetected) {
		t.Fatalf("expected ErrNoChangesDetected, got %v", err)
	}

	requested["yearGraduated"] = "2015"
	changes, original, err := Diff(sampleEmployee(), requested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changes["yearGraduated"] != "2015" || original["yearGraduated"] != "2012" {
		t.Fatalf("year change not normalized: %v / %v", changes, original)
	}
}

func TestDiffBothEmptySkipped(t *testing.T) {
	e := sampleEmployee()
	e.Address = ""
	requested := map[string]any{"address": "   "}
	if _, _, err := Diff(e, requested); !errors.Is(err, ErrNoChangesDetected) {
		t.Fatalf("empty-to-empty must not count as a change, got %v", err)
	}
}

func TestDiffRejectsUnknownFields(t *testing.T) {
	requested := map[string]any{"salary": 90000}
	if _, _, err := Diff(sampleEmployee(), requested); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestDiffCaseInsensitiveFieldNames(t *testing.T) {
	requested := map[string]any{"FirstName": "Ana"}
	changes, _, err := Diff(sampleEmployee(), requested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Stored under the canonical name regardless of request spelling.
	if changes["firstName"] != "Ana" {
		t.Fatalf("expected canonical key firstName, got %v", changes)
	}
}
