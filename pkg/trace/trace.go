package trace

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/lib/round"
)

// Tracer records every delivery of a protocol run so external tooling can
// reconstruct the message-flow graph without re-running the simulation.
type Tracer interface {
	Record(msg round.Message)
	Deliveries() []round.Message
}

var (
	_ Tracer = (*InMemoryTracer)(nil)
	_ Tracer = NopTracer{}
)

// InMemoryTracer keeps the full delivery log of one run.
type InMemoryTracer struct {
	id   string
	lock sync.Mutex
	log  []round.Message
}

func NewInMemoryTracer() *InMemoryTracer {
	return &InMemoryTracer{id: uuid.NewString()}
}

// ID is the unique identifier of the traced run.
func (t *InMemoryTracer) ID() string {
	return t.id
}

func (t *InMemoryTracer) Record(msg round.Message) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.log = append(t.log, msg)
}

func (t *InMemoryTracer) Deliveries() []round.Message {
	t.lock.Lock()
	defer t.lock.Unlock()

	out := make([]round.Message, len(t.log))
	copy(out, t.log)
	return out
}

// Edge is one signer->receiver link in the message-flow graph.
type Edge struct {
	From party.ID
	To   party.ID
}

// Graph collapses the delivery log into edges: every signer of a delivered
// message, other than the receiver itself, contributes one link to the
// receiver, labeled with the message value.
func (t *InMemoryTracer) Graph() map[Edge]map[bit.Bit]int {
	graph := make(map[Edge]map[bit.Bit]int)
	for _, msg := range t.Deliveries() {
		for _, signer := range msg.Content.Signers {
			if signer == msg.To {
				continue
			}
			edge := Edge{From: signer, To: msg.To}
			if graph[edge] == nil {
				graph[edge] = make(map[bit.Bit]int)
			}
			graph[edge][msg.Content.Value]++
		}
	}
	return graph
}

// Transcript is the exportable record of one run.
type Transcript struct {
	RunID      string          `cbor:"run_id"`
	Deliveries []round.Message `cbor:"deliveries"`
}

// Export serializes the delivery log for external tooling.
func (t *InMemoryTracer) Export() ([]byte, error) {
	return cbor.Marshal(Transcript{
		RunID:      t.id,
		Deliveries: t.Deliveries(),
	})
}

// NopTracer discards everything. For callers that never inspect the run.
type NopTracer struct{}

func (NopTracer) Record(round.Message)        {}
func (NopTracer) Deliveries() []round.Message { return nil }
