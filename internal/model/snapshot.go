package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// HeapEntry is one (symbol, weight) pair of a heap snapshot. On the wire it is
// a two element array whose weight may be a number or a string. Display keeps
// the weight as sent; Weight is its numeric value, NaN when it has none.
type HeapEntry struct {
	Symbol  string
	Weight  float64
	Display string
}

func (e *HeapEntry) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("heap entry: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("heap entry: expected [symbol, weight], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Symbol); err != nil {
		return fmt.Errorf("heap entry symbol: %w", err)
	}
	e.Weight, e.Display = parseWeight(pair[1])
	return nil
}

// Text is the cell text for the entry.
func (e HeapEntry) Text() string {
	if e.Display != "" {
		return e.Display
	}
	return FormatWeight(e.Weight)
}

// wireWeight is a JSON number when the text is the canonical rendering of
// Weight, otherwise the text itself, so string weights survive re-encoding.
func (e HeapEntry) wireWeight() any {
	text := e.Text()
	if !math.IsNaN(e.Weight) && !math.IsInf(e.Weight, 0) && text == FormatWeight(e.Weight) {
		return e.Weight
	}
	return text
}

func (e HeapEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Symbol, e.wireWeight()})
}

func (e HeapEntry) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(e.Symbol); err != nil {
		return err
	}
	return enc.Encode(e.wireWeight())
}

// FormatWeight renders a number the way it is shown in table cells.
func FormatWeight(w float64) string {
	switch {
	case math.IsNaN(w):
		return "NaN"
	case math.IsInf(w, 1):
		return "Infinity"
	case math.IsInf(w, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// parseWeight never fails: strings are shown verbatim, numbers in their
// canonical form, and any other token as its JSON text.
func parseWeight(raw json.RawMessage) (float64, string) {
	raw = bytes.TrimSpace(raw)
	w := looseFloat(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return w, s
		}
	}
	if !math.IsNaN(w) {
		return w, FormatWeight(w)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return w, string(raw)
	}
	return w, compact.String()
}

// HeapSnapshot is the priority queue contents at one stage of tree construction.
type HeapSnapshot struct {
	Stage int         `json:"stage" msgpack:"stage"`
	Heap  []HeapEntry `json:"heap" msgpack:"heap"`
}

func (s *HeapSnapshot) UnmarshalJSON(b []byte) error {
	var wire struct {
		Stage *LooseInt   `json:"stage"`
		Step  *LooseInt   `json:"step"`
		Heap  []HeapEntry `json:"heap"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return fmt.Errorf("heap snapshot: %w", err)
	}
	switch {
	case wire.Stage != nil:
		s.Stage = int(*wire.Stage)
	case wire.Step != nil:
		s.Stage = int(*wire.Step)
	default:
		s.Stage = 0
	}
	s.Heap = wire.Heap
	if s.Heap == nil {
		s.Heap = []HeapEntry{}
	}
	return nil
}

// Lookup returns the first entry for symbol.
func (s HeapSnapshot) Lookup(symbol string) (HeapEntry, bool) {
	for _, e := range s.Heap {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return HeapEntry{}, false
}
