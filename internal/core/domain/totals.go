package domain

// CustodyTotals counts days per custodian over a set of keys.
type CustodyTotals struct {
	A          int `json:"a"`
	B          int `json:"b"`
	Unassigned int `json:"unassigned"`
}

// Sum is always the number of keys the totals were computed over.
func (t CustodyTotals) Sum() int { return t.A + t.B + t.Unassigned }

func (t CustodyTotals) Of(c Custodian) int {
	switch c {
	case GuardianA:
		return t.A
	case GuardianB:
		return t.B
	default:
		return t.Unassigned
	}
}

// Totals counts each key once per occurrence; absent keys are Unassigned.
func Totals(doc Document, keys []DateKey) CustodyTotals {
	var t CustodyTotals
	for _, k := range keys {
		switch doc.Entry(k).Custodian {
		case GuardianA:
			t.A++
		case GuardianB:
			t.B++
		default:
			t.Unassigned++
		}
	}
	return t
}
