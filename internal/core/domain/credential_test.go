package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPIN(t *testing.T) {
	for _, pin := range []string{"0000", "1234", "9876"} {
		assert.True(t, ValidPIN(pin), pin)
	}
	for _, pin := range []string{"", "123", "12345", "12a4", " 1234", "١٢٣٤"} {
		assert.False(t, ValidPIN(pin), pin)
	}
}

func TestCanonicalUsername(t *testing.T) {
	assert.Equal(t, "alice", CanonicalUsername("Alice"))
	assert.Equal(t, "alice", CanonicalUsername("ALICE"))
}

func TestCustodian_Next(t *testing.T) {
	assert.Equal(t, GuardianA, Unassigned.Next())
	assert.Equal(t, GuardianB, GuardianA.Next())
	assert.Equal(t, Unassigned, GuardianB.Next())
}

func TestNames_Of(t *testing.T) {
	n := Names{A: "Connar"}
	assert.Equal(t, "Connar", n.Of(GuardianA))
	assert.Equal(t, "Guardian B", n.Of(GuardianB))
	assert.Equal(t, "Unassigned", n.Of(Unassigned))
}
