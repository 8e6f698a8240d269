package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "01-01-2023", "20230101", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "08:11", "14:40", "23:59"}
	invalid := []string{"24:00", "8:11", "08:60", "0811", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"A01", "PX005", "B12", "EMP0001"}
	invalid := []string{"a01", "A", "A 01", "A-01", "", "TOOLONGCODE123"}
	for _, s := range valid {
		if !IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"A01", "PX005"}
	if !IsInSlice("A01", slice) {
		t.Error("IsInSlice(A01) = false, want true")
	}
	if IsInSlice("B02", slice) {
		t.Error("IsInSlice(B02) = true, want false")
	}
	if IsInSlice("A01", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}
