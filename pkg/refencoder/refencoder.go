// Package refencoder is a small Huffman encoder that answers in the same JSON
// shape as the external encoder service. It backs the local encoder stub and
// test fixtures; the report pipeline itself never encodes.
package refencoder

import (
	"errors"
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

/*** ---------- wire shape ---------- ***/

// Step is one heap snapshot: [label, weight] pairs in heap array order.
type Step struct {
	Step int     `json:"step"`
	Heap [][]any `json:"heap"`
}

// Result maps are keyed by symbol label in first-seen order.
type Result struct {
	EncodedData   string                                  `json:"encodedData"`
	CRC           uint32                                  `json:"crc"`
	Filename      string                                  `json:"filename,omitempty"`
	Codes         *orderedmap.OrderedMap[string, string]  `json:"codes"`
	Message       string                                  `json:"message,omitempty"`
	OriginalSize  int                                     `json:"originalSize"`
	Frequencies   *orderedmap.OrderedMap[string, int]     `json:"frequencies"`
	Probabilities *orderedmap.OrderedMap[string, float64] `json:"probabilities"`
	BuildSteps    []Step                                  `json:"buildSteps"`
}

/*** ---------- tree ---------- ***/

type node struct {
	label       string
	c           byte
	f           uint32
	left, right *node
}

// minHeap compares frequency only; ties keep whatever order sifting leaves.
type minHeap struct {
	arr []*node
}

func (h *minHeap) size() int { return len(h.arr) }

func (h *minHeap) push(n *node) {
	h.arr = append(h.arr, n)
	i := len(h.arr) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.arr[parent].f <= h.arr[i].f {
			return
		}
		h.arr[parent], h.arr[i] = h.arr[i], h.arr[parent]
		i = parent
	}
}

func (h *minHeap) pop() *node {
	if h.size() == 0 {
		return nil
	}
	out := h.arr[0]
	last := h.arr[h.size()-1]
	h.arr = h.arr[:h.size()-1]
	if h.size() == 0 {
		return out
	}
	h.arr[0] = last

	parent := 0
	child := 1
	for child < h.size() {
		if child+1 < h.size() && h.arr[child+1].f < h.arr[child].f {
			child++
		}
		if h.arr[parent].f <= h.arr[child].f {
			return out
		}
		h.arr[parent], h.arr[child] = h.arr[child], h.arr[parent]
		parent = child
		child = 2*child + 1
	}
	return out
}

func (h *minHeap) snapshot(stage int) Step {
	pairs := make([][]any, len(h.arr))
	for i, n := range h.arr {
		pairs[i] = []any{n.label, n.f}
	}
	return Step{Step: stage, Heap: pairs}
}

// buildTree pushes symbols in first-seen order and records the heap before
// every merge and once more after the last one.
func buildTree(order []byte, freq map[byte]uint32) (*node, []Step) {
	h := &minHeap{}
	for _, c := range order {
		h.push(&node{label: Label(c), c: c, f: freq[c]})
	}
	steps := []Step{h.snapshot(1)}
	for h.size() > 1 {
		a := h.pop()
		b := h.pop()
		h.push(&node{label: a.label + b.label, f: a.f + b.f, left: a, right: b})
		steps = append(steps, h.snapshot(len(steps)+1))
	}
	return h.pop(), steps
}

func assignCodes(n *node, prefix string, out map[byte]string) {
	if n == nil {
		return
	}
	if n.left == nil && n.right == nil {
		if prefix == "" {
			prefix = "0"
		}
		out[n.c] = prefix
		return
	}
	assignCodes(n.left, prefix+"0", out)
	assignCodes(n.right, prefix+"1", out)
}

/*** ---------- public API ---------- ***/

// Label renders a byte as a symbol key. Printable ASCII is kept as is.
func Label(c byte) string {
	if c >= 0x20 && c < 0x7f && c != '\\' {
		return string(c)
	}
	return fmt.Sprintf(`\x%02x`, c)
}

func parseLabel(s string) (byte, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	if strings.HasPrefix(s, `\x`) && len(s) == 4 {
		v, err := strconv.ParseUint(s[2:], 16, 8)
		if err == nil {
			return byte(v), nil
		}
	}
	return 0, fmt.Errorf("bad symbol label %q", s)
}

// Encode Huffman-codes data into a '0'/'1' bitstring and reports codes,
// frequencies, probabilities and the heap history.
func Encode(filename string, data []byte) *Result {
	freq := make(map[byte]uint32)
	var order []byte
	for _, c := range data {
		if _, ok := freq[c]; !ok {
			order = append(order, c)
		}
		freq[c]++
	}

	res := &Result{
		CRC:           crc32.ChecksumIEEE(data),
		Filename:      filename,
		Codes:         orderedmap.New[string, string](),
		OriginalSize:  len(data),
		Frequencies:   orderedmap.New[string, int](),
		Probabilities: orderedmap.New[string, float64](),
		BuildSteps:    []Step{},
	}
	if len(data) == 0 {
		res.Message = "empty input"
		return res
	}

	root, steps := buildTree(order, freq)
	codes := make(map[byte]string, len(order))
	assignCodes(root, "", codes)

	var sb strings.Builder
	for _, c := range data {
		sb.WriteString(codes[c])
	}
	res.EncodedData = sb.String()
	res.BuildSteps = steps
	for _, c := range order {
		l := Label(c)
		res.Codes.Set(l, codes[c])
		res.Frequencies.Set(l, int(freq[c]))
		res.Probabilities.Set(l, float64(freq[c])/float64(len(data)))
	}
	return res
}

// Decode walks the bitstring against the code table.
func Decode(encoded string, codes *orderedmap.OrderedMap[string, string]) ([]byte, error) {
	if codes == nil || codes.Len() == 0 {
		if encoded == "" {
			return nil, nil
		}
		return nil, errors.New("invalid code table: empty")
	}
	byCode := make(map[string]byte, codes.Len())
	for p := codes.Oldest(); p != nil; p = p.Next() {
		c, err := parseLabel(p.Key)
		if err != nil {
			return nil, err
		}
		byCode[p.Value] = c
	}

	out := make([]byte, 0, len(encoded)/4)
	start := 0
	for i := 1; i <= len(encoded); i++ {
		if c, ok := byCode[encoded[start:i]]; ok {
			out = append(out, c)
			start = i
		}
	}
	if start != len(encoded) {
		return nil, fmt.Errorf("invalid bitstream: %d trailing bits (unpacked=%q)", len(encoded)-start, string(out))
	}
	return out, nil
}
