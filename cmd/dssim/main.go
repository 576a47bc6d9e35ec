package main

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/pkg/report"
	"github.com/mr-shifu/dolev-strong/pkg/trace"
	"github.com/mr-shifu/dolev-strong/protocols/dolevstrong"
)

func main() {
	var (
		n          = flag.Int("n", 7, "participant count")
		f          = flag.Int("f", 2, "fault bound; the run executes f+1 rounds")
		faultyCSV  = flag.String("faulty", "1,3", "comma-separated faulty participant IDs, empty for none")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "seed for byzantine behavior")
		equivocate = flag.Bool("equivocate", false, "use the equivocating adversary instead of the silent one")
		verbose    = flag.Bool("verbose", false, "print each honest participant's extraction set")
		export     = flag.String("export", "", "write the CBOR transcript to this file")
	)
	flag.Parse()

	faulty, err := parseFaulty(*faultyCSV)
	if err != nil {
		pterm.Error.Printfln("bad -faulty list: %v", err)
		os.Exit(2)
	}

	cfg := dolevstrong.Config{
		Participants: *n,
		FaultBound:   *f,
		Faulty:       faulty,
		Seed:         *seed,
	}
	if *equivocate {
		cfg.Adversary = dolevstrong.NewEquivocatingAdversary
	}

	sim, err := dolevstrong.NewSimulation(cfg)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(1)
	}
	decisions, err := sim.Run()
	if err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(1)
	}

	pterm.Info.Printfln("%s: n=%d f=%d rounds=%d seed=%d", dolevstrong.Protocol, *n, *f, sim.Rounds(), *seed)

	r := report.New(sim)
	render(r.Decisions(decisions))
	if *verbose {
		pterm.DefaultSection.Println("Extraction sets")
		render(r.ExtractionSets())
	}
	pterm.DefaultSection.Println("Message flow")
	render(r.Graph())

	if *export != "" {
		tracer, ok := sim.Trace().(*trace.InMemoryTracer)
		if !ok {
			pterm.Error.Println("no in-memory trace to export")
			os.Exit(1)
		}
		data, err := tracer.Export()
		if err != nil {
			pterm.Error.Printfln("export: %v", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*export, data, 0o644); err != nil {
			pterm.Error.Printfln("export: %v", err)
			os.Exit(1)
		}
		pterm.Success.Printfln("transcript %s written to %s", tracer.ID(), *export)
	}
}

func render(out string, err error) {
	if err != nil {
		pterm.Error.Printfln("render: %v", err)
		os.Exit(1)
	}
	pterm.Println(out)
}

func parseFaulty(csv string) ([]party.ID, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	ids := make([]party.ID, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, party.ID(v))
	}
	return ids, nil
}
