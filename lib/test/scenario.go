// Package test provides scenario helpers shared by the protocol tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/protocols/dolevstrong"
)

// Scenario is one protocol configuration exercised by the tests.
type Scenario struct {
	Name      string
	N         int
	F         int
	Faulty    []party.ID
	Seed      int64
	Adversary dolevstrong.AdversaryFactory
}

// Run builds and executes the scenario, failing t on any error.
func (s Scenario) Run(t *testing.T) (map[party.ID]bit.Bit, *dolevstrong.Simulation) {
	t.Helper()

	sim, err := dolevstrong.NewSimulation(dolevstrong.Config{
		Participants: s.N,
		FaultBound:   s.F,
		Faulty:       s.Faulty,
		Seed:         s.Seed,
		Adversary:    s.Adversary,
	})
	require.NoError(t, err)

	decisions, err := sim.Run()
	require.NoError(t, err)
	require.Len(t, decisions, s.N)
	return decisions, sim
}

// HonestDecisions filters decisions down to the honest participants.
func HonestDecisions(decisions map[party.ID]bit.Bit, faulty []party.ID) map[party.ID]bit.Bit {
	out := make(map[party.ID]bit.Bit, len(decisions))
	for id, v := range decisions {
		if !party.IDSlice(faulty).Contains(id) {
			out[id] = v
		}
	}
	return out
}

// RequireAgreement asserts that every honest participant decided the same bit
// and returns it.
func RequireAgreement(t *testing.T, decisions map[party.ID]bit.Bit, faulty []party.ID) bit.Bit {
	t.Helper()

	honest := HonestDecisions(decisions, faulty)
	require.NotEmpty(t, honest)

	var agreed bit.Bit
	first := true
	for id, v := range honest {
		if first {
			agreed, first = v, false
			continue
		}
		require.Equal(t, agreed, v, "participant %d disagrees", id)
	}
	return agreed
}

// RequireValidity asserts that every decision, faulty participants included,
// is one of the two domain bits.
func RequireValidity(t *testing.T, decisions map[party.ID]bit.Bit) {
	t.Helper()

	for id, v := range decisions {
		assert.True(t, v.Valid(), "participant %d decided out-of-domain value %d", id, v)
	}
}
