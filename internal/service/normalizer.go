package service

import (
	"errors"

	"github.com/lanhtutoicao123/TSL-CLIENT/internal/model"
)

// ErrMalformedResponse is returned when the upstream response carries neither
// encoded data nor a message.
var ErrMalformedResponse = errors.New("malformed upstream response: missing encoded data and message")

// Normalize maps an upstream response onto a CanonicalResult. Sizes and the
// compression ratio are derived here; the upstream values are never trusted.
func Normalize(raw *model.RawUpstreamResult, src model.SourceFile) (*model.CanonicalResult, error) {
	if raw == nil || (str(raw.EncodedData) == "" && str(raw.Message) == "") {
		return nil, ErrMalformedResponse
	}

	encoded := str(raw.EncodedData)
	originalSize := src.ByteSize
	if originalSize < 0 {
		// unknown local size: fall back to the upstream hint
		originalSize = 0
		if raw.OriginalSize != nil && *raw.OriginalSize > 0 {
			originalSize = int64(*raw.OriginalSize)
		}
	}
	compressedSize := int64(len(encoded)) // Go strings are UTF-8 bytes

	filename := str(raw.Filename)
	if filename == "" {
		filename = src.Name
	}

	out := &model.CanonicalResult{
		EncodedData:      encoded,
		DownloadURL:      str(raw.DownloadURL),
		Filename:         filename,
		OriginalSize:     originalSize,
		CompressedSize:   compressedSize,
		CRCValid:         true, // not recomputed; upstream owns checksum verification
		CompressionRatio: compressionRatio(originalSize, compressedSize),
		TreeImageBase64:  str(raw.TreeImageBase64),
		Message:          str(raw.Message),
		BuildSteps:       heapSnapshots(raw),
	}
	if raw.CRC != nil {
		out.CRC = int64(*raw.CRC)
	}
	if raw.Codes != nil {
		out.Codes = *raw.Codes
	}
	for _, sym := range raw.Frequencies.Keys() {
		f, _ := raw.Frequencies.Get(sym)
		out.Frequencies.Set(sym, int64(f))
	}
	if raw.Probabilities != nil {
		out.Probabilities = *raw.Probabilities
	}
	return out, nil
}

// heapSnapshots resolves the two field names the upstream may use for the
// build history. buildSteps wins over build_steps.
func heapSnapshots(raw *model.RawUpstreamResult) []model.HeapSnapshot {
	for _, candidate := range [][]model.HeapSnapshot{raw.BuildSteps, raw.BuildStepsSnake} {
		if len(candidate) > 0 {
			return candidate
		}
	}
	return []model.HeapSnapshot{}
}

func compressionRatio(originalSize, compressedSize int64) float64 {
	if originalSize <= 0 {
		return 0
	}
	return float64(originalSize-compressedSize) / float64(originalSize) * 100
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
