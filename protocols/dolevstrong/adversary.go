package dolevstrong

import (
	"math/rand"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/message"
	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/lib/round"
)

// Proposal is one round-0 value a faulty participant sends to one peer.
type Proposal struct {
	To    party.ID
	Value bit.Bit
}

// Adversary is the behavior of a faulty participant. The protocol's safety
// proof tolerates arbitrary behavior here; the implementations below model
// adversaries of different strength.
type Adversary interface {
	// Propose returns the round-0 proposals. A strong adversary may send
	// conflicting values to different peers.
	Propose(peers party.IDSlice) []Proposal
	// Forward returns the subset of peers that receive the forwarded form of
	// one eligible message in rounds 1..f. Nil withholds the message.
	Forward(r round.Number, msg message.Msg, peers party.IDSlice) party.IDSlice
	// Decide returns the faulty participant's final output, which the
	// protocol leaves unconstrained.
	Decide() bit.Bit
}

// AdversaryFactory builds the adversary of one faulty participant from its ID
// and its private random generator.
type AdversaryFactory func(self party.ID, rng *rand.Rand) Adversary

var (
	_ Adversary = (*SilentAdversary)(nil)
	_ Adversary = (*EquivocatingAdversary)(nil)
)

// SilentAdversary broadcasts one random bit at round 0 and never forwards.
// This is a strictly weaker adversary than the protocol tolerates: it cannot
// equivocate and withholds its forwarding entirely.
type SilentAdversary struct {
	rng *rand.Rand
}

func NewSilentAdversary(_ party.ID, rng *rand.Rand) Adversary {
	return &SilentAdversary{rng: rng}
}

func (a *SilentAdversary) Propose(peers party.IDSlice) []Proposal {
	value := bit.Random(a.rng)
	proposals := make([]Proposal, 0, len(peers))
	for _, peer := range peers {
		proposals = append(proposals, Proposal{To: peer, Value: value})
	}
	return proposals
}

func (a *SilentAdversary) Forward(round.Number, message.Msg, party.IDSlice) party.IDSlice {
	return nil
}

func (a *SilentAdversary) Decide() bit.Bit {
	return bit.Random(a.rng)
}

// EquivocatingAdversary sends an independently chosen bit to every peer at
// round 0 and forwards each eligible message to a random subset of peers.
type EquivocatingAdversary struct {
	rng *rand.Rand
}

func NewEquivocatingAdversary(_ party.ID, rng *rand.Rand) Adversary {
	return &EquivocatingAdversary{rng: rng}
}

func (a *EquivocatingAdversary) Propose(peers party.IDSlice) []Proposal {
	proposals := make([]Proposal, 0, len(peers))
	for _, peer := range peers {
		proposals = append(proposals, Proposal{To: peer, Value: bit.Random(a.rng)})
	}
	return proposals
}

func (a *EquivocatingAdversary) Forward(_ round.Number, _ message.Msg, peers party.IDSlice) party.IDSlice {
	targets := make(party.IDSlice, 0, len(peers))
	for _, peer := range peers {
		if a.rng.Intn(2) == 0 {
			targets = append(targets, peer)
		}
	}
	return targets
}

func (a *EquivocatingAdversary) Decide() bit.Bit {
	return bit.Random(a.rng)
}
