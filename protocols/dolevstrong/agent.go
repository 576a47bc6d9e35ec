package dolevstrong

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/message"
	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/lib/round"
	"github.com/mr-shifu/dolev-strong/pkg/mailbox"
)

// Agent is one simulated participant: an identifier, a fixed honest/faulty
// classification and a mailbox of received messages.
type Agent struct {
	id        party.ID
	roster    party.IDSlice
	inbox     mailbox.Mailbox
	adversary Adversary
}

func newAgent(id party.ID, roster party.IDSlice, adversary Adversary) *Agent {
	return &Agent{
		id:        id,
		roster:    roster,
		inbox:     mailbox.NewInMemoryMailbox(),
		adversary: adversary,
	}
}

func (a *Agent) ID() party.ID {
	return a.id
}

func (a *Agent) Faulty() bool {
	return a.adversary != nil
}

// peers is the roster without the agent itself; agents do not deliver to
// themselves.
func (a *Agent) peers() party.IDSlice {
	return a.roster.Remove(a.id)
}

// receive files msg into the mailbox. Messages with a repeated signer and
// messages already present by (value, signers) identity are dropped silently.
func (a *Agent) receive(msg message.Msg) bool {
	return a.inbox.Store(msg)
}

// send produces the agent's outgoing deliveries for round r: the initial
// proposal at round 0, signature-chain forwarding afterwards.
func (a *Agent) send(r round.Number) ([]round.Message, error) {
	if r == 0 {
		return a.propose()
	}
	return a.forward(r)
}

func (a *Agent) propose() ([]round.Message, error) {
	if a.adversary != nil {
		var out []round.Message
		for _, p := range a.adversary.Propose(a.peers()) {
			msg, err := message.New(p.Value, a.id)
			if err != nil {
				return nil, errors.WithMessagef(err, "agent %d: propose", a.id)
			}
			out = append(out, round.Message{Round: 0, From: a.id, To: p.To, Content: msg})
		}
		return out, nil
	}

	// An honest participant proposes the canonical bit, signed only by
	// itself.
	msg, err := message.New(bit.One, a.id)
	if err != nil {
		return nil, errors.WithMessagef(err, "agent %d: propose", a.id)
	}
	peers := a.peers()
	out := make([]round.Message, 0, len(peers))
	for _, to := range peers {
		out = append(out, round.Message{Round: 0, From: a.id, To: to, Content: msg})
	}
	return out, nil
}

// forward relays every mailbox message whose signer chain has exactly r
// signers, with the agent's own signature appended. Honest agents relay to
// every peer; faulty agents relay however their adversary chooses.
func (a *Agent) forward(r round.Number) ([]round.Message, error) {
	var out []round.Message
	for _, msg := range a.inbox.Messages() {
		if len(msg.Signers) != int(r) {
			continue
		}
		derived := msg.WithSigner(a.id)
		targets := a.peers()
		if a.adversary != nil {
			targets = a.adversary.Forward(r, msg, targets)
		} else {
			// The forwarder keeps the chain it just signed. A chain that
			// reaches f+1 signatures at the last round would otherwise enter
			// every extraction set except the signer's own.
			a.receive(derived)
		}
		for _, to := range targets {
			out = append(out, round.Message{Round: r, From: a.id, To: to, Content: derived})
		}
	}
	return out, nil
}

// extraction returns the distinct values among mailbox messages carrying
// exactly f+1 signatures, sorted for determinism.
func (a *Agent) extraction(f int) []bit.Bit {
	seen := make(map[bit.Bit]struct{})
	for _, msg := range a.inbox.Messages() {
		if len(msg.Signers) == f+1 {
			seen[msg.Value] = struct{}{}
		}
	}
	out := make([]bit.Bit, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// decide computes the final output once all rounds are done: the single
// extracted value if there is exactly one, the zero bit otherwise. Faulty
// participants output whatever their adversary picks.
func (a *Agent) decide(f int) bit.Bit {
	if a.adversary != nil {
		return a.adversary.Decide()
	}
	extracted := a.extraction(f)
	if len(extracted) == 1 {
		return extracted[0]
	}
	return bit.Zero
}
