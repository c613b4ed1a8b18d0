package service

import (
	"math"
	"sort"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/lanhtutoicao123/TSL-CLIENT/internal/model"
)

// DefaultSymbolRate is one symbol per second, which makes BitRate equal AvgLength.
const DefaultSymbolRate = 1.0

// ComputeSymbolTable lists every symbol of frequencies in insertion order.
// Missing probabilities default to 0 and missing codewords to "".
func ComputeSymbolTable(frequencies *model.SymbolMap[int64], probabilities *model.SymbolMap[float64], codes *model.SymbolMap[string]) []model.SymbolStatistic {
	keys := frequencies.Keys()
	out := make([]model.SymbolStatistic, 0, len(keys))
	for _, sym := range keys {
		freq, _ := frequencies.Get(sym)
		p, _ := probabilities.Get(sym)
		code, _ := codes.Get(sym)
		out = append(out, model.SymbolStatistic{
			Symbol:      sym,
			Frequency:   freq,
			Probability: p,
			Codeword:    code,
			Length:      utf8.RuneCountInString(code),
		})
	}
	return out
}

// ComputeAggregates derives entropy, expected codeword length, its variance,
// coding efficiency and the bit rate at symbolRate symbols per second.
func ComputeAggregates(table []model.SymbolStatistic, symbolRate float64) model.Aggregates {
	var entropy, avg float64
	for _, s := range table {
		if s.Probability != 0 {
			entropy += s.Probability * math.Log2(1/s.Probability)
		}
		avg += s.Probability * float64(s.Length)
	}

	var variance float64
	for _, s := range table {
		d := float64(s.Length) - avg
		variance += s.Probability * d * d
	}

	denom := avg
	if denom == 0 {
		denom = 1
	}
	return model.Aggregates{
		Entropy:    entropy,
		AvgLength:  avg,
		Variance:   variance,
		Efficiency: entropy / denom,
		BitRate:    symbolRate * avg,
	}
}

// BuildPivotTable turns the heap snapshots into one row per symbol, sorted by
// symbol, and one column per snapshot in the order received. A cell is empty
// when the symbol is not in that snapshot, whether it has not been pushed yet
// or has already been merged.
func BuildPivotTable(snapshots []model.HeapSnapshot) model.PivotTable {
	seen := make(map[string]struct{})
	symbols := make([]string, 0)
	for _, snap := range snapshots {
		for _, e := range snap.Heap {
			if _, ok := seen[e.Symbol]; ok {
				continue
			}
			seen[e.Symbol] = struct{}{}
			symbols = append(symbols, e.Symbol)
		}
	}
	sort.Slice(symbols, func(i, j int) bool { return lessUTF16(symbols[i], symbols[j]) })

	stages := make([]string, len(snapshots))
	for i, snap := range snapshots {
		stages[i] = StageLabel(snap.Stage)
	}

	rows := make([]model.PivotRow, 0, len(symbols))
	for _, sym := range symbols {
		cells := make([]string, len(snapshots))
		for i, snap := range snapshots {
			if e, ok := snap.Lookup(sym); ok {
				cells[i] = e.Text()
			}
		}
		rows = append(rows, model.PivotRow{Symbol: sym, Cells: cells})
	}
	return model.PivotTable{Stages: stages, Rows: rows}
}

// StageLabel is the column header for a snapshot stage.
func StageLabel(stage int) string {
	return "Stage " + strconv.Itoa(stage)
}

// lessUTF16 compares by UTF-16 code units, so astral-plane symbols sort
// before U+E000..U+FFFF.
func lessUTF16(a, b string) bool {
	ua, ub := utf16.Encode([]rune(a)), utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}
