package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// RawUpstreamResult is the response body of the external encoder/decoder
// service. Every field is optional on the wire; pointers distinguish absent
// from zero.
type RawUpstreamResult struct {
	EncodedData     *string              `json:"encodedData"`
	CRC             *LooseInt            `json:"crc"`
	DownloadURL     *string              `json:"downloadUrl"`
	Filename        *string              `json:"filename"`
	Codes           *SymbolMap[string]   `json:"codes"`
	TreeImageBase64 *string              `json:"tree_image_base64"`
	Message         *string              `json:"message"`
	OriginalSize    *LooseInt            `json:"originalSize"`
	Frequencies     *SymbolMap[LooseInt] `json:"frequencies"`
	Probabilities   *SymbolMap[float64]  `json:"probabilities"`
	BuildSteps      []HeapSnapshot       `json:"buildSteps"`
	BuildStepsSnake []HeapSnapshot       `json:"build_steps"`
}

// SourceFile describes the file that was sent upstream.
type SourceFile struct {
	Name     string `json:"name"`
	ByteSize int64  `json:"byteSize"`
}

type CanonicalResult struct {
	EncodedData      string             `json:"encodedData" msgpack:"encodedData"`
	CRC              int64              `json:"crc" msgpack:"crc"`
	DownloadURL      string             `json:"downloadUrl,omitempty" msgpack:"downloadUrl,omitempty"`
	Filename         string             `json:"filename" msgpack:"filename"`
	OriginalSize     int64              `json:"originalSize" msgpack:"originalSize"`
	CompressedSize   int64              `json:"compressedSize" msgpack:"compressedSize"`
	CRCValid         bool               `json:"crcValid" msgpack:"crcValid"`
	CompressionRatio float64            `json:"compressionRatio" msgpack:"compressionRatio"`
	Codes            SymbolMap[string]  `json:"codes" msgpack:"codes"`
	TreeImageBase64  string             `json:"treeImageBase64,omitempty" msgpack:"treeImageBase64,omitempty"`
	Message          string             `json:"message,omitempty" msgpack:"message,omitempty"`
	Frequencies      SymbolMap[int64]   `json:"frequencies" msgpack:"frequencies"`
	Probabilities    SymbolMap[float64] `json:"probabilities" msgpack:"probabilities"`
	BuildSteps       []HeapSnapshot     `json:"buildSteps" msgpack:"buildSteps"`
}

// FormattedRatio renders the ratio with two decimals, or N/A when it is not a number.
func (r *CanonicalResult) FormattedRatio() string {
	if math.IsNaN(r.CompressionRatio) {
		return "N/A"
	}
	return strconv.FormatFloat(r.CompressionRatio, 'f', 2, 64)
}

// TreeImageDataURI returns the tree image as a PNG data URI, or "" if none was sent.
func (r *CanonicalResult) TreeImageDataURI() string {
	if r.TreeImageBase64 == "" {
		return ""
	}
	return "data:image/png;base64," + r.TreeImageBase64
}

type SymbolStatistic struct {
	Symbol      string  `json:"symbol" msgpack:"symbol"`
	Frequency   int64   `json:"frequency" msgpack:"frequency"`
	Probability float64 `json:"probability" msgpack:"probability"`
	Codeword    string  `json:"codeword" msgpack:"codeword"`
	Length      int     `json:"length" msgpack:"length"`
}

// Aggregates are in bits per symbol except BitRate (bits per second).
type Aggregates struct {
	Entropy    float64 `msgpack:"entropy"`
	AvgLength  float64 `msgpack:"avgLength"`
	Variance   float64 `msgpack:"variance"`
	Efficiency float64 `msgpack:"efficiency"`
	BitRate    float64 `msgpack:"bitRate"`
}

// MarshalJSON writes non-finite metrics as null; degenerate inputs are reported, not rejected.
func (a Aggregates) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Entropy    *float64 `json:"entropy"`
		AvgLength  *float64 `json:"avgLength"`
		Variance   *float64 `json:"variance"`
		Efficiency *float64 `json:"efficiency"`
		BitRate    *float64 `json:"bitRate"`
	}{finite(a.Entropy), finite(a.AvgLength), finite(a.Variance), finite(a.Efficiency), finite(a.BitRate)})
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

type PivotRow struct {
	Symbol string   `json:"symbol" msgpack:"symbol"`
	Cells  []string `json:"cells" msgpack:"cells"`
}

// PivotTable is the symbol x stage build history.
type PivotTable struct {
	Stages []string   `json:"stages" msgpack:"stages"`
	Rows   []PivotRow `json:"rows" msgpack:"rows"`
}

type Report struct {
	ID         string            `json:"id" msgpack:"id"`
	Result     *CanonicalResult  `json:"result" msgpack:"result"`
	Symbols    []SymbolStatistic `json:"symbols" msgpack:"symbols"`
	Aggregates Aggregates        `json:"aggregates" msgpack:"aggregates"`
	Pivot      PivotTable        `json:"pivot" msgpack:"pivot"`
}
