// Package dolevstrong simulates the Dolev-Strong byzantine agreement
// protocol: n participants, up to f of them faulty, converge on a single bit
// over f+1 synchronous rounds of signature-chain forwarding.
package dolevstrong

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/pkg/trace"
)

const Protocol = "dolevstrong/binary-agreement"

// ErrConfig is returned by NewSimulation for configurations the protocol
// cannot run: no participants, a negative fault bound, or a faulty set with
// out-of-range or repeated IDs.
var ErrConfig = errors.New("dolevstrong: invalid configuration")

// Config describes one simulation run.
//
// Config does not require len(Faulty) <= FaultBound. The agreement guarantee
// only holds when the caller respects the bound; running with more faults
// than the bound is allowed precisely so that tests can observe the guarantee
// break down.
type Config struct {
	// Participants is the roster size n; IDs are 0..n-1.
	Participants int
	// FaultBound is f, the number of faults the run is dimensioned to
	// tolerate. The run executes exactly f+1 rounds.
	FaultBound int
	// Faulty lists the byzantine participants.
	Faulty []party.ID
	// Seed makes the byzantine choices reproducible. Each participant draws
	// from its own generator derived from Seed and its ID, so results do not
	// depend on goroutine scheduling.
	Seed int64
	// Adversary builds the behavior of each faulty participant.
	// Nil defaults to NewSilentAdversary.
	Adversary AdversaryFactory
	// Tracer records deliveries for inspection. Nil defaults to an
	// in-memory tracer.
	Tracer trace.Tracer
}

func (cfg Config) validate() error {
	if cfg.Participants < 1 {
		return errors.Wrapf(ErrConfig, "participant count %d", cfg.Participants)
	}
	if cfg.FaultBound < 0 {
		return errors.Wrapf(ErrConfig, "fault bound %d", cfg.FaultBound)
	}
	seen := make(map[party.ID]struct{}, len(cfg.Faulty))
	for _, id := range cfg.Faulty {
		if id < 0 || int(id) >= cfg.Participants {
			return errors.Wrapf(ErrConfig, "faulty id %d out of range [0,%d)", id, cfg.Participants)
		}
		if _, ok := seen[id]; ok {
			return errors.Wrapf(ErrConfig, "faulty id %d listed twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// partyRand derives an independent, reproducible generator for one
// participant.
func partyRand(seed int64, id party.ID) *rand.Rand {
	return rand.New(rand.NewSource(seed ^ (int64(id)+1)*0x9e3779b9))
}
