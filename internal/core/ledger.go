package core

// Sentinels used by normalization when a field carries no data.
// They are reserved values, distinct from a true zero or empty string.
const (
	NoParty = "-"
	NoDate  = "-"

	// UnassignedUnit marks a row whose unit (table) number is absent or
	// unparseable.
	UnassignedUnit = -1
)

// Fixed price points of the event, in cents. The classifier matches the
// first two exactly; the sponsorship floor is a threshold.
const (
	FullTableCents     int64 = 60000
	HalfTableCents     int64 = 30000
	SponsorshipFloor   int64 = 100000
	SponsorshipPremium int64 = 40000
)

type (
	// Category is the closed classification taxonomy. Values are the
	// labels shown on the dashboard and in exports.
	Category string

	// LedgerRow is one allocation/payment record after normalization.
	// Every row has a sequence number, an effective amount and a
	// category; Unit is either a positive table number or
	// UnassignedUnit.
	LedgerRow struct {
		Sequence     int
		Party        string
		Client       string
		Unit         int
		RawAmount    *Money // nil when no payment was recorded
		Effective    Money  // RawAmount, or zero when absent
		ReceivedDate string
		Category     Category
	}
)

const (
	CategoryPending     Category = "PENDENTE"
	CategoryPaidFull    Category = "MESA PAGA"
	CategoryPaidHalf    Category = "MEIA MESA"
	CategorySponsorship Category = "PATROCÍNIO"
	CategoryOther       Category = "OUTRO"
)

// Categories lists all taxonomy members in display order.
func Categories() []Category {
	return []Category{
		CategoryPaidFull,
		CategoryPaidHalf,
		CategorySponsorship,
		CategoryPending,
		CategoryOther,
	}
}

// Classify maps an effective amount to its category. It is a total
// function: every amount, including zero, negative and fractional
// values, lands in exactly one category.
//
// The taxonomy is exact-match, not range based: the event sells tables
// at two fixed price points, so anything that is not exactly a full or
// half table and sits below the sponsorship floor is OUTRO, never
// PENDENTE. An absent payment is normalized to zero upstream, so zero
// covers both "no payment yet" and an explicit zero entry.
func Classify(amount Money) Category {
	switch {
	case amount.Cents == 0:
		return CategoryPending
	case amount.Cents == FullTableCents:
		return CategoryPaidFull
	case amount.Cents == HalfTableCents:
		return CategoryPaidHalf
	case amount.Cents >= SponsorshipFloor:
		return CategorySponsorship
	default:
		return CategoryOther
	}
}

// HasUnit reports whether the row has an assigned table number.
func (r LedgerRow) HasUnit() bool {
	return r.Unit != UnassignedUnit
}

// HasPayment reports whether a payment was recorded for the row.
func (r LedgerRow) HasPayment() bool {
	return r.RawAmount != nil
}
