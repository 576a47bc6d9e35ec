// Package report renders a finished simulation for human inspection: who
// decided what, and the signer->receiver message-flow graph.
package report

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/pkg/trace"
	"github.com/mr-shifu/dolev-strong/protocols/dolevstrong"
)

type Renderer struct {
	sim *dolevstrong.Simulation
}

func New(sim *dolevstrong.Simulation) *Renderer {
	return &Renderer{sim: sim}
}

// Decisions renders the final decision of every participant.
func (r *Renderer) Decisions(decisions map[party.ID]bit.Bit) (string, error) {
	data := pterm.TableData{{"participant", "role", "decision"}}
	for _, id := range r.sim.PartyIDs() {
		role := pterm.LightGreen("honest")
		if r.sim.Faulty(id) {
			role = pterm.LightRed("faulty")
		}
		data = append(data, []string{
			strconv.Itoa(int(id)),
			role,
			decisions[id].String(),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// Graph renders the message-flow graph reconstructed from the delivery
// trace: one row per signer->receiver edge, with the number of messages per
// value that crossed it.
func (r *Renderer) Graph() (string, error) {
	tracer, ok := r.sim.Trace().(*trace.InMemoryTracer)
	if !ok {
		return "", errors.New("report: simulation ran without an in-memory tracer")
	}

	graph := tracer.Graph()
	edges := make([]trace.Edge, 0, len(graph))
	for edge := range graph {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	data := pterm.TableData{{"edge", "value 0", "value 1"}}
	for _, edge := range edges {
		labels := graph[edge]
		data = append(data, []string{
			pterm.Sprintf("%d -> %d", edge.From, edge.To),
			strconv.Itoa(labels[bit.Zero]),
			strconv.Itoa(labels[bit.One]),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// ExtractionSets renders the extraction set each honest participant decided
// from.
func (r *Renderer) ExtractionSets() (string, error) {
	data := pterm.TableData{{"participant", "extraction set"}}
	for _, id := range r.sim.PartyIDs() {
		if r.sim.Faulty(id) {
			continue
		}
		set := "{}"
		if extracted := r.sim.ExtractionSet(id); len(extracted) > 0 {
			set = pterm.Sprintf("%v", extracted)
		}
		data = append(data, []string{strconv.Itoa(int(id)), set})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
