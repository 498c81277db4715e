package domain

import "fmt"

// Custodian is the guardian assigned to a calendar day.
type Custodian string

const (
	Unassigned Custodian = "UNASSIGNED"
	GuardianA  Custodian = "A"
	GuardianB  Custodian = "B"
)

// Custodians lists every tag in display order.
var Custodians = []Custodian{GuardianA, GuardianB, Unassigned}

// Next advances along Unassigned -> A -> B -> Unassigned.
// Unknown values restart the cycle at A.
func (c Custodian) Next() Custodian {
	switch c {
	case GuardianA:
		return GuardianB
	case GuardianB:
		return Unassigned
	default:
		return GuardianA
	}
}

func (c Custodian) Valid() bool {
	switch c {
	case Unassigned, GuardianA, GuardianB:
		return true
	}
	return false
}

// ParseCustodian accepts the wire value of a tag. An empty string is Unassigned.
func ParseCustodian(s string) (Custodian, error) {
	if s == "" {
		return Unassigned, nil
	}
	c := Custodian(s)
	if !c.Valid() {
		return "", Invalid(fmt.Sprintf("unknown custodian %q", s))
	}
	return c, nil
}

// legacyCustodians maps tags written by the first deployment, which named
// the guardians directly, onto the A/B tags.
var legacyCustodians = map[Custodian]Custodian{
	"CONNAR": GuardianA,
	"EMMA":   GuardianB,
}

// UpgradeLegacy rewrites legacy guardian tags in doc and reports whether
// anything changed. Unknown tags are left for Normalize to reject.
func UpgradeLegacy(doc Document) (Document, bool) {
	changed := false
	for k, e := range doc {
		if c, ok := legacyCustodians[e.Custodian]; ok {
			if !changed {
				doc = doc.Clone()
				changed = true
			}
			e.Custodian = c
			doc[k] = e
		}
	}
	return doc, changed
}

// Names maps custodians to the labels shown in grids, totals and reports.
type Names struct {
	A string
	B string
}

// DefaultNames is used when no guardian names are configured.
var DefaultNames = Names{A: "Guardian A", B: "Guardian B"}

func (n Names) Of(c Custodian) string {
	switch c {
	case GuardianA:
		if n.A == "" {
			return DefaultNames.A
		}
		return n.A
	case GuardianB:
		if n.B == "" {
			return DefaultNames.B
		}
		return n.B
	default:
		return "Unassigned"
	}
}
