package testutil

import "testing"

func TestRaw(t *testing.T) {
	raw := Raw("principal", "10k", "annualRate", "5%")
	if len(raw) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(raw))
	}
	if raw["principal"] != "10k" || raw["annualRate"] != "5%" {
		t.Errorf("unexpected raw input: %v", raw)
	}
}

func TestRawPanicsOnOddArguments(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for odd argument count")
		}
	}()
	Raw("principal")
}

func TestAssertClose(t *testing.T) {
	AssertClose(t, "value", 1.004, 1.0, 0.01)
	AssertClose(t, "exact", -2.5, -2.5, 0)
}
