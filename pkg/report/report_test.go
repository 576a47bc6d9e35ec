package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/pkg/report"
	"github.com/mr-shifu/dolev-strong/protocols/dolevstrong"
)

func newRun(t *testing.T) (*dolevstrong.Simulation, map[party.ID]bit.Bit) {
	t.Helper()
	sim, err := dolevstrong.NewSimulation(dolevstrong.Config{
		Participants: 5,
		FaultBound:   1,
		Faulty:       []party.ID{2},
		Seed:         1,
	})
	require.NoError(t, err)
	decisions, err := sim.Run()
	require.NoError(t, err)
	return sim, decisions
}

func TestDecisions(t *testing.T) {
	sim, decisions := newRun(t)

	out, err := report.New(sim).Decisions(decisions)
	require.NoError(t, err)
	assert.Contains(t, out, "participant")
	assert.Contains(t, out, "honest")
	assert.Contains(t, out, "faulty")
}

func TestGraph(t *testing.T) {
	sim, _ := newRun(t)

	out, err := report.New(sim).Graph()
	require.NoError(t, err)
	assert.Contains(t, out, "edge")
	assert.Contains(t, out, "0 -> 1")
}

func TestExtractionSets(t *testing.T) {
	sim, _ := newRun(t)

	out, err := report.New(sim).ExtractionSets()
	require.NoError(t, err)
	assert.Contains(t, out, "extraction set")
}
