package dolevstrong

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/message"
	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/lib/round"
	"github.com/mr-shifu/dolev-strong/pkg/trace"
)

// Simulation owns the roster and drives the f+1 synchronous rounds.
type Simulation struct {
	cfg    Config
	agents []*Agent
	tracer trace.Tracer
	rounds int
	done   bool
}

// NewSimulation validates cfg and builds the roster.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	factory := cfg.Adversary
	if factory == nil {
		factory = NewSilentAdversary
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.NewInMemoryTracer()
	}

	faulty := make(map[party.ID]struct{}, len(cfg.Faulty))
	for _, id := range cfg.Faulty {
		faulty[id] = struct{}{}
	}

	roster := party.NewIDSlice(cfg.Participants)
	agents := make([]*Agent, 0, cfg.Participants)
	for _, id := range roster {
		var adversary Adversary
		if _, ok := faulty[id]; ok {
			adversary = factory(id, partyRand(cfg.Seed, id))
		}
		agents = append(agents, newAgent(id, roster, adversary))
	}

	return &Simulation{cfg: cfg, agents: agents, tracer: tracer}, nil
}

// Run executes rounds 0..f, then collects every participant's decision.
//
// Within a round all send steps run concurrently; their outgoing deliveries
// are buffered per sender and applied in roster order only after the whole
// round's sends have completed, so no agent observes a round-r message before
// round r ends. Mailbox insertion is idempotent, which makes the fixed
// application order a determinism choice rather than a correctness one.
func (s *Simulation) Run() (map[party.ID]bit.Bit, error) {
	if s.done {
		return nil, errors.New("dolevstrong: simulation already ran")
	}
	s.done = true

	outgoing := make([][]round.Message, len(s.agents))
	for r := round.Number(0); int(r) <= s.cfg.FaultBound; r++ {
		var g errgroup.Group
		for i, a := range s.agents {
			i, a := i, a
			g.Go(func() error {
				msgs, err := a.send(r)
				outgoing[i] = msgs
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, errors.WithMessagef(err, "round %d", r)
		}

		for i := range outgoing {
			for _, msg := range outgoing[i] {
				// an adversary may address a recipient outside the roster;
				// such deliveries are dropped
				if int(msg.To) < 0 || int(msg.To) >= len(s.agents) {
					continue
				}
				s.agents[msg.To].receive(msg.Content)
				s.tracer.Record(msg)
			}
			outgoing[i] = nil
		}
		s.rounds++
	}

	decisions := make(map[party.ID]bit.Bit, len(s.agents))
	for _, a := range s.agents {
		decisions[a.id] = a.decide(s.cfg.FaultBound)
	}
	return decisions, nil
}

// Rounds is the number of rounds executed so far.
func (s *Simulation) Rounds() int {
	return s.rounds
}

// PartyIDs is the roster.
func (s *Simulation) PartyIDs() party.IDSlice {
	return party.NewIDSlice(len(s.agents))
}

// Faulty reports the classification of one participant.
func (s *Simulation) Faulty(id party.ID) bool {
	if int(id) < 0 || int(id) >= len(s.agents) {
		return false
	}
	return s.agents[id].Faulty()
}

// Mailbox returns a copy of one participant's final mailbox.
func (s *Simulation) Mailbox(id party.ID) []message.Msg {
	if int(id) < 0 || int(id) >= len(s.agents) {
		return nil
	}
	return s.agents[id].inbox.Messages()
}

// ExtractionSet returns the distinct values a participant saw with exactly
// f+1 signatures, the input to its decision rule.
func (s *Simulation) ExtractionSet(id party.ID) []bit.Bit {
	if int(id) < 0 || int(id) >= len(s.agents) {
		return nil
	}
	return s.agents[id].extraction(s.cfg.FaultBound)
}

// Trace exposes the full delivery record of the run.
func (s *Simulation) Trace() trace.Tracer {
	return s.tracer
}
