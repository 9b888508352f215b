package model

import "testing"

func TestSignup_RowOrder(t *testing.T) {
	t.Parallel()

	s := Signup{
		Timestamp: "2024-01-01T00:00:00Z",
		Email:     "a@b.com",
		Username:  "alice",
	}

	row := s.Row()
	if len(row) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(row))
	}
	// Column order is fixed: A=timestamp, B=email, C=username.
	if row[0] != "2024-01-01T00:00:00Z" || row[1] != "a@b.com" || row[2] != "alice" {
		t.Errorf("unexpected row: %v", row)
	}
}

func TestSignup_RowEmptyTimestamp(t *testing.T) {
	t.Parallel()

	row := Signup{Email: "a@b.com", Username: "alice"}.Row()
	if row[0] != "" {
		t.Errorf("empty timestamp should still occupy column A, got %v", row[0])
	}
}
