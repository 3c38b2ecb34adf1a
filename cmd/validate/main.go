// Command validate checks that every dataset in a catalogue produces a
// colourbar satisfying the engine invariants: contiguous uniformly spaced
// boundaries covering the data range, one colour per bin, a normalized
// stepped colourscale, pinned targets and bounded ticks. With -summaries it
// repeats the checks against live ranges from a range summary fixture.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -catalog internal/catalog/catalog.yaml \
//	  -summaries data/mock/range_summaries.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"github.com/couchcryptid/design-value-explorer/internal/domain"
	"github.com/couchcryptid/design-value-explorer/internal/explorer"
	"github.com/couchcryptid/design-value-explorer/internal/observability"
)

// relTol bounds the relative spacing error between adjacent bins.
const relTol = 1e-9

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	checks int
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	catalogPath := flag.String("catalog", "", "catalogue YAML (default: embedded catalogue)")
	summariesPath := flag.String("summaries", "", "optional range summary fixture")
	flag.Parse()

	os.Exit(run(*catalogPath, *summariesPath))
}

func run(catalogPath, summariesPath string) int {
	fmt.Println("=== Colour Scale Validation ===")
	fmt.Println()

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load catalog: %v\n", err)
		return 1
	}

	var summaries []domain.RangeSummary
	if summariesPath != "" {
		if summaries, err = loadJSON[domain.RangeSummary](summariesPath); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load summaries: %v\n", err)
			return 1
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := explorer.NewService(cat, len(cat.DesignValues)*8, logger, observability.NewMetricsForTesting())

	phases := []*phase{
		validateCatalogDefaults(svc),
		validateLogFloor(svc),
	}
	if summariesPath != "" {
		phases = append(phases, validateLiveRanges(svc, summaries))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-46s %4d checks  %s\n", p.name, p.checks, status)
	}

	fmt.Println()
	fmt.Printf("Catalogue: %d design values, max %d ticks; summaries: %d\n",
		len(cat.DesignValues), cat.MaxTicks, len(summaries))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateCatalogDefaults(svc *explorer.Service) *phase {
	p := &phase{name: "Phase 1: Catalogue defaults"}
	cat := svc.Catalog()
	for i := range cat.DesignValues {
		dv := &cat.DesignValues[i]
		for _, st := range datasetStates(svc, p, dv) {
			checkState(p, svc, st)
		}
	}
	return p
}

func validateLogFloor(svc *explorer.Service) *phase {
	p := &phase{name: "Phase 2: Logarithmic floor for non-positive minima"}
	cat := svc.Catalog()
	for i := range cat.DesignValues {
		dv := &cat.DesignValues[i]
		st, err := svc.Initial(dv.ID, catalog.Historical)
		if err != nil {
			p.errorf("%s: %v", dv.ID, err)
			continue
		}
		if st.Max <= 0 {
			continue
		}
		st, err = svc.Reduce(st, explorer.SetScale{Scale: colorscale.Logarithmic})
		if err == nil {
			st, err = svc.Reduce(st, explorer.SetRange{Min: 0, Max: st.Max})
		}
		if err != nil {
			p.errorf("%s: %v", dv.ID, err)
			continue
		}
		cb := checkState(p, svc, st)
		if cb != nil && !(cb.Min > 0) {
			p.errorf("%s: log colourbar min %g is not positive", dv.ID, cb.Min)
		}
	}
	return p
}

func validateLiveRanges(svc *explorer.Service, summaries []domain.RangeSummary) *phase {
	p := &phase{name: "Phase 3: Live ranges from range summaries"}
	for _, s := range summaries {
		if err := svc.ApplyRange(s); err != nil {
			p.errorf("%s: apply: %v", s.Key(), err)
			continue
		}
		st, err := svc.Initial(s.DesignValue, s.Regime)
		if err == nil && s.WarmingLevel != "" {
			st, err = svc.Reduce(st, explorer.SelectWarmingLevel{Level: s.WarmingLevel})
			if err == nil {
				st, err = svc.Reduce(st, explorer.ResetRange{})
			}
		}
		if err != nil {
			p.errorf("%s: %v", s.Key(), err)
			continue
		}
		if !floatEq(st.Min, s.Min) || !floatEq(st.Max, s.Max) {
			p.errorf("%s: state range [%g, %g] does not match summary [%g, %g]", s.Key(), st.Min, st.Max, s.Min, s.Max)
		}
		checkState(p, svc, st)
	}
	return p
}

// datasetStates returns the default state of the historical regime and of
// every future warming level.
func datasetStates(svc *explorer.Service, p *phase, dv *catalog.DesignValue) []explorer.State {
	var states []explorer.State
	hist, err := svc.Initial(dv.ID, catalog.Historical)
	if err != nil {
		p.errorf("%s/historical: %v", dv.ID, err)
	} else {
		states = append(states, hist)
	}
	for _, level := range dv.WarmingLevels {
		st, err := svc.Initial(dv.ID, catalog.Future)
		if err == nil {
			st, err = svc.Reduce(st, explorer.SelectWarmingLevel{Level: level})
		}
		if err != nil {
			p.errorf("%s: %v", domain.DatasetKey(dv.ID, catalog.Future, level), err)
			continue
		}
		states = append(states, st)
	}
	return states
}

// ── Colourbar checks ──

func checkState(p *phase, svc *explorer.Service, st explorer.State) *colorscale.Colourbar {
	name := domain.DatasetKey(st.DesignValue, st.Regime, st.WarmingLevel)
	p.checks++
	cb, err := svc.Colourbar(context.Background(), st)
	if err != nil {
		p.errorf("%s: %v", name, err)
		return nil
	}
	checkColourbar(func(format string, args ...any) {
		p.errorf(name+": "+format, args...)
	}, cb, svc.Catalog().MaxTicks)
	return &cb
}

func checkColourbar(pf func(string, ...any), cb colorscale.Colourbar, maxTicks int) {
	b := cb.Boundaries
	if len(b) < 2 {
		pf("only %d boundaries", len(b))
		return
	}
	if len(cb.Colours) != len(b)-1 {
		pf("%d colours for %d boundaries", len(cb.Colours), len(b))
	}
	if len(cb.Colourscale) != 2*len(cb.Colours) {
		pf("%d colourscale stops for %d colours", len(cb.Colourscale), len(cb.Colours))
	}
	checkBoundaries(pf, cb)
	checkColourscale(pf, cb.Colourscale)
	checkTicks(pf, cb, maxTicks)
}

func checkBoundaries(pf func(string, ...any), cb colorscale.Colourbar) {
	b := cb.Boundaries
	if b[0] > cb.Min || b[len(b)-1] < cb.Max {
		pf("boundaries [%g, %g] do not cover range [%g, %g]", b[0], b[len(b)-1], cb.Min, cb.Max)
	}
	tr, err := colorscale.Transform(cb.Mode)
	if err != nil {
		pf("%v", err)
		return
	}
	step := tr.Forward(b[1]) - tr.Forward(b[0])
	for i := 1; i < len(b); i++ {
		if !(b[i] > b[i-1]) {
			pf("boundaries not increasing at %d: %g <= %g", i, b[i], b[i-1])
			return
		}
		d := tr.Forward(b[i]) - tr.Forward(b[i-1])
		if math.Abs(d-step) > relTol*math.Max(1, math.Abs(step))*float64(len(b)) {
			pf("bin %d width %g differs from %g", i, d, step)
		}
	}
	if cb.Target != nil && !slices.Contains(b, *cb.Target) {
		pf("target %g is not a boundary", *cb.Target)
	}
}

func checkColourscale(pf func(string, ...any), stops []colorscale.Stop) {
	if len(stops) == 0 {
		return
	}
	if !floatEq(stops[0].Position, 0) || !floatEq(stops[len(stops)-1].Position, 1) {
		pf("colourscale spans [%g, %g], want [0, 1]", stops[0].Position, stops[len(stops)-1].Position)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Position < stops[i-1].Position {
			pf("colourscale position decreases at stop %d", i)
			return
		}
	}
}

func checkTicks(pf func(string, ...any), cb colorscale.Colourbar, maxTicks int) {
	t := cb.Ticks
	if len(t) > maxTicks {
		pf("%d ticks exceed the maximum %d", len(t), maxTicks)
	}
	if len(t) < 2 || t[0] != cb.Min || t[len(t)-1] != cb.Max {
		pf("ticks %v do not start at min %g and end at max %g", t, cb.Min, cb.Max)
	}
	if !slices.IsSorted(t) {
		pf("ticks %v are not sorted", t)
	}
	if cb.Target != nil && !slices.Contains(t, *cb.Target) {
		pf("target %g is not a tick", *cb.Target)
	}
	if len(cb.TickLabels) != len(t) || len(cb.TickValues) != len(t) {
		pf("%d ticks, %d labels, %d tick values", len(t), len(cb.TickLabels), len(cb.TickValues))
	}
}

// ── Helpers ──

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
