package uuid

import "testing"

func TestNew(t *testing.T) {
	t.Run("valid_and_unique", func(t *testing.T) {
		a, b := New(), New()
		if !IsValid(a) || !IsValid(b) {
			t.Fatalf("expected valid ids, got %q and %q", a, b)
		}
		if a == b {
			t.Error("expected distinct ids")
		}
	})

	t.Run("time_ordered", func(t *testing.T) {
		a := New()
		b := New()
		if a[14] != '7' {
			t.Errorf("expected a version 7 id, got %q", a)
		}
		if b < a {
			t.Errorf("expected %q to sort after %q", b, a)
		}
	})
}

func TestIsValid(t *testing.T) {
	if IsValid("visa") {
		t.Error("expected a plain word to be rejected")
	}
}
