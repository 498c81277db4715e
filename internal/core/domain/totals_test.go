package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotals_SumsToKeyCount(t *testing.T) {
	doc := Document{
		"2024-01-01": {Custodian: GuardianA},
		"2024-01-02": {Custodian: GuardianA},
		"2024-01-03": {Custodian: GuardianB},
		"2024-01-04": {Custodian: Unassigned, Notes: "away"},
		"2025-06-01": {Custodian: GuardianB},
	}
	keys := MonthDateKeys(2024, 0)

	got := Totals(doc, keys)
	assert.Equal(t, CustodyTotals{A: 2, B: 1, Unassigned: 28}, got)
	assert.Equal(t, len(keys), got.Sum())
}

func TestTotals_DuplicatesCountPerOccurrence(t *testing.T) {
	doc := Document{"2024-01-01": {Custodian: GuardianB}}
	got := Totals(doc, []DateKey{"2024-01-01", "2024-01-01", "2024-01-02"})
	assert.Equal(t, CustodyTotals{B: 2, Unassigned: 1}, got)
	assert.Equal(t, 2, got.Of(GuardianB))
}

func TestTotals_Empty(t *testing.T) {
	assert.Equal(t, CustodyTotals{}, Totals(nil, nil))
}
