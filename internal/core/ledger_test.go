package core

import "testing"

func TestClassifyFixedPoints(t *testing.T) {
	cases := []struct {
		cents int64
		want  Category
	}{
		{0, CategoryPending},
		{60000, CategoryPaidFull},
		{30000, CategoryPaidHalf},
		{100000, CategorySponsorship},
		{150000, CategorySponsorship},
		{99999, CategoryOther},
		{45000, CategoryOther},
		{60001, CategoryOther},
		{59999, CategoryOther},
		{1, CategoryOther},
		{-5000, CategoryOther},
		{-100000, CategoryOther},
	}
	for _, tc := range cases {
		if got := Classify(Money{Cents: tc.cents}); got != tc.want {
			t.Fatalf("Classify(%d) = %s, want %s", tc.cents, got, tc.want)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Every amount must land in exactly one of the five members.
	members := map[Category]bool{}
	for _, c := range Categories() {
		members[c] = true
	}
	for _, cents := range []int64{-1, 0, 1, 29999, 30000, 30001, 59999, 60000, 60001, 99999, 100000, 100001, 1 << 40} {
		got := Classify(Money{Cents: cents})
		if !members[got] {
			t.Fatalf("Classify(%d) returned unknown category %q", cents, got)
		}
	}
}

func TestLedgerRowHelpers(t *testing.T) {
	r := LedgerRow{Unit: UnassignedUnit}
	if r.HasUnit() {
		t.Fatalf("expected no unit for sentinel %d", UnassignedUnit)
	}
	if r.HasPayment() {
		t.Fatalf("expected no payment for nil raw amount")
	}
	r = LedgerRow{Unit: 12, RawAmount: &Money{Cents: 60000}}
	if !r.HasUnit() || !r.HasPayment() {
		t.Fatalf("expected unit and payment to be present")
	}
}
