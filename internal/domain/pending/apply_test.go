package pending

import (
	"testing"
)

func TestApplyWritesCoercedValues(t *testing.T) {
	e := sampleEmployee()
	applied, skipped := apply(e, map[string]any{
		"phone":         "555-0155",
		"hireDate":      "2020-01-15",
		"yearGraduated": "2014",
	})

	if len(applied) != 3 || len(skipped) != 0 {
		t.Fatalf("expected 3 applied and 0 skipped, got %v / %v", applied, skipped)
	}
	if e.Phone != "555-0155" {
		t.Fatalf("phone not applied: %q", e.Phone)
	}
	if e.HireDate == nil || e.HireDate.Format("2006-01-02") != "2020-01-15" {
		t.Fatalf("hire date not applied: %v", e.HireDate)
	}
	if e.YearGraduated == nil || *e.YearGraduated != 2014 {
		t.Fatalf("year not applied: %v", e.YearGraduated)
	}
}

func TestApplySkipsUncoercibleValues(t *testing.T) {
	e := sampleEmployee()
	applied, skipped := apply(e, map[string]any{
		"firstName":     "Ana",
		"yearGraduated": "not-a-year",
		"dateOfBirth":   "31/31/2020",
	})

	if len(applied) != 1 || applied[0] != "firstName" {
		t.Fatalf("expected only firstName applied, got %v", applied)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped, got %v", skipped)
	}
	if *e.YearGraduated != 2012 {
		t.Fatal("failed coercion must leave the original value alone")
	}
}

func TestApplyClearsWithEmptyValues(t *testing.T) {
	e := sampleEmployee()
	applied, _ := apply(e, map[string]any{"yearGraduated": "", "dateOfBirth": ""})
	if len(applied) != 2 {
		t.Fatalf("expected 2 applied, got %v", applied)
	}
	if e.YearGraduated != nil || e.DateOfBirth != nil {
		t.Fatal("empty values must clear nullable fields")
	}
}
