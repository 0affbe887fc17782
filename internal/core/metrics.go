package core

import "sort"

type (
	// Filter selects a subset of the normalized set. All three
	// conditions are conjunctive; zero values mean "no restriction".
	// A party or category absent from the set simply yields an empty
	// subset, never an error.
	Filter struct {
		Categories []Category // empty = all categories
		Party      string     // "" = all parties
		Min, Max   *Money     // inclusive bounds on the effective amount
	}

	// GlobalMetrics are the scalar summary metrics over one row
	// subset. The same formulas apply to the full set and to any
	// filtered subset.
	GlobalMetrics struct {
		Rows int

		// MaxSequenceExpected is the highest sequence number seen,
		// i.e. the number of units that should exist assuming dense
		// numbering from 1. MissingSequences are the gaps: units
		// never recorded at all, as opposed to recorded-but-unpaid.
		MaxSequenceExpected int
		MissingSequences    []int

		SponsorshipCount      int
		SponsorshipTotal      Money
		SponsorshipExtraTotal Money // portion paid above the fixed floor

		PaidFullCount int
		PaidFullTotal Money
		PaidHalfCount int
		PaidHalfTotal Money
		OtherCount    int
		OtherTotal    Money

		// PendingWithRecord counts PENDENTE rows actually present;
		// PendingTotal adds the missing sequence numbers, since an
		// unrecorded unit is also pending in the business sense.
		PendingWithRecord int
		PendingTotal      int

		TotalReceived      Money
		ExpectedTotal      Money
		OutstandingBalance Money
		PercentReceived    float64
	}

	// PartySummary aggregates the rows attributed to one responsible
	// party. Unlike the global expectation, the per-party expectation
	// is driven by the party's own row count: sequence gaps are
	// unattributed by definition, so there is no per-party gap
	// concept.
	PartySummary struct {
		Party             string
		UnitsDistributed  int
		TotalReceived     Money
		SponsorshipCount  int
		ExpectedAmount    Money
		OutstandingAmount Money
	}
)

// Match reports whether a row passes the filter.
func (f Filter) Match(r LedgerRow) bool {
	if len(f.Categories) > 0 {
		ok := false
		for _, c := range f.Categories {
			if r.Category == c {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Party != "" && r.Party != f.Party {
		return false
	}
	if f.Min != nil && r.Effective.Cents < f.Min.Cents {
		return false
	}
	if f.Max != nil && r.Effective.Cents > f.Max.Cents {
		return false
	}
	return true
}

// Apply returns the rows passing the filter, preserving order.
func (f Filter) Apply(rows []LedgerRow) []LedgerRow {
	out := make([]LedgerRow, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ComputeMetrics derives the global metrics and the per-party
// summaries from the given row subset. It is a pure function of its
// input: callers pass either the full normalized set or a filtered
// subset, and every formula (including the expected maximum sequence)
// is recomputed from that subset alone.
//
// An empty subset yields well-defined zero metrics; in particular the
// received percentage is 0, not a division error.
func ComputeMetrics(rows []LedgerRow) (GlobalMetrics, []PartySummary) {
	var m GlobalMetrics
	m.Rows = len(rows)

	seen := make(map[int]bool, len(rows))
	for _, r := range rows {
		seen[r.Sequence] = true
		if r.Sequence > m.MaxSequenceExpected {
			m.MaxSequenceExpected = r.Sequence
		}

		switch r.Category {
		case CategorySponsorship:
			m.SponsorshipCount++
			m.SponsorshipTotal = m.SponsorshipTotal.Add(r.Effective)
		case CategoryPaidFull:
			m.PaidFullCount++
			m.PaidFullTotal = m.PaidFullTotal.Add(r.Effective)
		case CategoryPaidHalf:
			m.PaidHalfCount++
			m.PaidHalfTotal = m.PaidHalfTotal.Add(r.Effective)
		case CategoryPending:
			m.PendingWithRecord++
		case CategoryOther:
			m.OtherCount++
			m.OtherTotal = m.OtherTotal.Add(r.Effective)
		}

		if r.Effective.Cents > 0 {
			m.TotalReceived = m.TotalReceived.Add(r.Effective)
		}
	}

	for seq := 1; seq <= m.MaxSequenceExpected; seq++ {
		if !seen[seq] {
			m.MissingSequences = append(m.MissingSequences, seq)
		}
	}

	m.SponsorshipExtraTotal = m.SponsorshipTotal.Sub(Money{Cents: int64(m.SponsorshipCount) * SponsorshipFloor})
	m.PendingTotal = m.PendingWithRecord + len(m.MissingSequences)

	// Every expected unit is priced at the full-table rate, and every
	// sponsorship carries a fixed premium on top of that baseline.
	m.ExpectedTotal = Money{Cents: int64(m.MaxSequenceExpected)*FullTableCents + int64(m.SponsorshipCount)*SponsorshipPremium}
	m.OutstandingBalance = m.ExpectedTotal.Sub(m.TotalReceived)
	if m.ExpectedTotal.Cents > 0 {
		m.PercentReceived = float64(m.TotalReceived.Cents) / float64(m.ExpectedTotal.Cents) * 100
	}

	return m, partySummaries(rows)
}

func partySummaries(rows []LedgerRow) []PartySummary {
	byParty := make(map[string]*PartySummary)
	order := make([]string, 0)
	for _, r := range rows {
		s, ok := byParty[r.Party]
		if !ok {
			s = &PartySummary{Party: r.Party}
			byParty[r.Party] = s
			order = append(order, r.Party)
		}
		s.UnitsDistributed++
		s.TotalReceived = s.TotalReceived.Add(r.Effective)
		if r.Category == CategorySponsorship {
			s.SponsorshipCount++
		}
	}

	out := make([]PartySummary, 0, len(order))
	for _, party := range order {
		s := byParty[party]
		s.ExpectedAmount = Money{Cents: int64(s.UnitsDistributed)*FullTableCents + int64(s.SponsorshipCount)*SponsorshipPremium}
		s.OutstandingAmount = s.ExpectedAmount.Sub(s.TotalReceived)
		out = append(out, *s)
	}

	// Descending by units distributed; ties keep first-seen order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UnitsDistributed > out[j].UnitsDistributed
	})
	return out
}
