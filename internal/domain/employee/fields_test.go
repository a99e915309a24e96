package employee

import (
	"testing"
	"time"
)

func TestLookupFieldCaseInsensitive(t *testing.T) {
	if _, ok := LookupField("FirstName"); !ok {
		t.Fatal("expected PascalCase lookup to resolve")
	}
	if _, ok := LookupField("hiredate"); !ok {
		t.Fatal("expected lowercase lookup to resolve")
	}
	if _, ok := LookupField("salary"); ok {
		t.Fatal("unknown field must not resolve")
	}
}

func TestNormalizeDateFormats(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"1995-06-14", "1995-06-14"},
		{"1995-06-14T00:00:00Z", "1995-06-14"},
		{"06/14/1995", "1995-06-14"},
		{time.Date(1995, 6, 14, 10, 30, 0, 0, time.UTC), "1995-06-14"},
		{nil, ""},
		{"", ""},
		{"not-a-date", "not-a-date"},
	}
	for _, tc := range cases {
		if got := NormalizeDate(tc.in); got != tc.want {
			t.Fatalf("NormalizeDate(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIntFieldNormalize(t *testing.T) {
	f, _ := LookupField("yearGraduated")
	if got := f.Normalize(float64(2010)); got != "2010" {
		t.Fatalf("numeric normalize = %q", got)
	}
	if got := f.Normalize("2010"); got != "2010" {
		t.Fatalf("string normalize = %q", got)
	}
	if got := f.Normalize(nil); got != "" {
		t.Fatalf("nil normalize = %q", got)
	}
}

func TestSetDateField(t *testing.T) {
	var e Employee
	f, _ := LookupField("hireDate")
	if err := f.Set(&e, "2020-01-15"); err != nil {
		t.Fatalf("set date failed: %v", err)
	}
	if e.HireDate == nil || e.HireDate.Format("2006-01-02") != "2020-01-15" {
		t.Fatalf("unexpected hire date: %v", e.HireDate)
	}
	if err := f.Set(&e, "garbage"); err == nil {
		t.Fatal("expected unparseable date to error")
	}
}

func TestSetIntField(t *testing.T) {
	var e Employee
	f, _ := LookupField("departmentId")
	if err := f.Set(&e, "4"); err != nil {
		t.Fatalf("set int from string failed: %v", err)
	}
	if e.DepartmentID == nil || *e.DepartmentID != 4 {
		t.Fatalf("unexpected department: %v", e.DepartmentID)
	}
	if err := f.Set(&e, float64(9)); err != nil {
		t.Fatalf("set int from number failed: %v", err)
	}
	if *e.DepartmentID != 9 {
		t.Fatalf("unexpected department: %v", *e.DepartmentID)
	}
	if err := f.Set(&e, "abc"); err == nil {
		t.Fatal("expected unparseable int to error")
	}
}

func TestSnapshotUsesCanonicalForms(t *testing.T) {
	hire := time.Date(2020, 1, 15, 9, 0, 0, 0, time.UTC)
	year := int64(2010)
	e := Employee{FirstName: "Ana", HireDate: &hire, YearGraduated: &year}

	snap := Snapshot(&e)
	if snap["hireDate"] != "2020-01-15" {
		t.Fatalf("hireDate = %v", snap["hireDate"])
	}
	if snap["yearGraduated"] != "2010" {
		t.Fatalf("yearGraduated = %v", snap["yearGraduated"])
	}
}
