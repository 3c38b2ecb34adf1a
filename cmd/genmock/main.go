// Command genmock generates range summary fixtures from a catalogue and the
// colourbar messages the pipeline publishes for them. It runs the actual
// pipeline transformer so the colourbar fixture matches real behaviour.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -summaries-out data/mock/range_summaries.json \
//	  -colourbars-out data/mock/colourbars.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"github.com/couchcryptid/design-value-explorer/internal/domain"
	"github.com/couchcryptid/design-value-explorer/internal/explorer"
	"github.com/couchcryptid/design-value-explorer/internal/observability"
	"github.com/couchcryptid/design-value-explorer/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

var computedAt = time.Date(2024, time.May, 1, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	catalogPath := flag.String("catalog", "", "catalogue YAML (default: embedded catalogue)")
	summariesOut := flag.String("summaries-out", "", "output path for the range summary fixture")
	colourbarsOut := flag.String("colourbars-out", "", "optional output path for the colourbar message fixture")
	flag.Parse()

	if *summariesOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -summaries-out")
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}

	// Set a fixed clock for reproducible published_at timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(computedAt))
	defer domain.SetClock(nil)

	summaries := mockSummaries(cat)
	log.Printf("generated %d range summaries", len(summaries))

	if err := writeJSON(*summariesOut, summaries); err != nil {
		return fmt.Errorf("writing summary fixture: %w", err)
	}
	log.Printf("wrote summary fixture: %s", *summariesOut)

	msgs, err := transformAll(cat, summaries)
	if err != nil {
		return err
	}
	if *colourbarsOut != "" {
		if err := writeJSON(*colourbarsOut, msgs); err != nil {
			return fmt.Errorf("writing colourbar fixture: %w", err)
		}
		log.Printf("wrote colourbar fixture: %s", *colourbarsOut)
	}

	printStats(msgs)
	return nil
}

// mockSummaries narrows each catalogue range slightly so live ranges differ
// from the defaults: 1% per side for historical data, and a little more for
// each successive warming level.
func mockSummaries(cat *catalog.Catalog) []domain.RangeSummary {
	var out []domain.RangeSummary
	for i := range cat.DesignValues {
		dv := &cat.DesignValues[i]

		h := dv.Historical.Range
		span := h.Max - h.Min
		out = append(out, domain.RangeSummary{
			DesignValue: dv.ID,
			Regime:      catalog.Historical,
			Min:         colorscale.SigFigs(h.Min+span*0.01, 3),
			Max:         colorscale.SigFigs(h.Max-span*0.01, 3),
			Source:      dv.ID + "_historical.nc",
			ComputedAt:  computedAt,
		})

		f := dv.Future.Range
		span = f.Max - f.Min
		for j, level := range dv.WarmingLevels {
			k := float64(j + 1)
			out = append(out, domain.RangeSummary{
				DesignValue:  dv.ID,
				Regime:       catalog.Future,
				WarmingLevel: level,
				Min:          colorscale.SigFigs(f.Min+span*0.02*k, 3),
				Max:          colorscale.SigFigs(f.Max-span*0.03*k, 3),
				Source:       dv.ID + "_future_" + level + ".nc",
				ComputedAt:   computedAt,
			})
		}
	}
	return out
}

func transformAll(cat *catalog.Catalog, summaries []domain.RangeSummary) ([]domain.ColourbarMessage, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := explorer.NewService(cat, len(summaries), logger, observability.NewMetricsForTesting())
	tfm := pipeline.NewTransformer(svc, logger)

	msgs := make([]domain.ColourbarMessage, 0, len(summaries))
	for _, s := range summaries {
		value, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("marshal summary %s: %w", s.Key(), err)
		}
		msg, err := tfm.Transform(context.Background(), domain.RawEvent{Value: value, Timestamp: computedAt})
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", s.Key(), err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type binCount struct {
	bins  int
	count int
}

func printStats(msgs []domain.ColourbarMessage) {
	regimes := map[catalog.Regime]int{}
	modes := map[colorscale.Mode]int{}
	bins := map[int]int{}
	var withTarget, extended int

	for i := range msgs {
		cb := &msgs[i].Colourbar
		regimes[msgs[i].Regime]++
		modes[cb.Mode]++
		bins[cb.Bins()]++
		if cb.Target != nil {
			withTarget++
		}
		if cb.Boundaries[0] < cb.Min || cb.Boundaries[len(cb.Boundaries)-1] > cb.Max {
			extended++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(msgs))
	fmt.Printf("By regime: historical=%d, future=%d\n", regimes[catalog.Historical], regimes[catalog.Future])
	fmt.Printf("By scale: linear=%d, logarithmic=%d\n", modes[colorscale.Linear], modes[colorscale.Logarithmic])
	fmt.Printf("With target: %d\n", withTarget)
	fmt.Printf("Boundaries extending past the data range: %d\n", extended)

	bc := make([]binCount, 0, len(bins))
	for b, c := range bins {
		bc = append(bc, binCount{b, c})
	}
	sort.Slice(bc, func(i, j int) bool { return bc[i].bins < bc[j].bins })
	fmt.Print("By bin count:")
	for _, b := range bc {
		fmt.Printf(" %d=%d", b.bins, b.count)
	}
	fmt.Println()
}
