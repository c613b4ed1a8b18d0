package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lanhtutoicao123/TSL-CLIENT/internal/model"
	"github.com/lanhtutoicao123/TSL-CLIENT/pkg/logger"
)

// Upstream sends a file to the external encoder/decoder service.
type Upstream interface {
	Submit(ctx context.Context, mode model.Mode, filename string, content []byte) (*model.RawUpstreamResult, error)
}

type ReportService struct {
	upstream   Upstream
	logger     logger.Logger
	symbolRate float64
}

// NewReportService builds a service. upstream may be nil when only Build is used.
func NewReportService(u Upstream, l logger.Logger, symbolRate float64) *ReportService {
	if symbolRate <= 0 {
		symbolRate = DefaultSymbolRate
	}
	return &ReportService{upstream: u, logger: l, symbolRate: symbolRate}
}

func (s *ReportService) SymbolRate() float64 { return s.symbolRate }

// Build runs the normalization and statistics pipeline over an upstream
// response. A symbolRate <= 0 uses the service default.
func (s *ReportService) Build(raw *model.RawUpstreamResult, src model.SourceFile, symbolRate float64) (*model.Report, error) {
	if symbolRate <= 0 {
		symbolRate = s.symbolRate
	}
	res, err := Normalize(raw, src)
	if err != nil {
		s.logger.Errorf("normalize %s: %v", src.Name, err)
		return nil, err
	}

	symbols := ComputeSymbolTable(&res.Frequencies, &res.Probabilities, &res.Codes)
	rep := &model.Report{
		ID:         uuid.NewString(),
		Result:     res,
		Symbols:    symbols,
		Aggregates: ComputeAggregates(symbols, symbolRate),
		Pivot:      BuildPivotTable(res.BuildSteps),
	}
	s.logger.Infof("report %s: file=%s original=%dB compressed=%dB ratio=%s%% symbols=%d stages=%d",
		rep.ID, res.Filename, res.OriginalSize, res.CompressedSize, res.FormattedRatio(), len(symbols), len(rep.Pivot.Stages))
	return rep, nil
}

// Process submits content upstream and builds a report from the response.
func (s *ReportService) Process(ctx context.Context, mode model.Mode, src model.SourceFile, content []byte, symbolRate float64) (*model.Report, error) {
	if s.upstream == nil {
		return nil, fmt.Errorf("%s %s: no upstream configured", mode, src.Name)
	}
	s.logger.Debugf("submitting %s (%d bytes) to upstream, mode=%s", src.Name, len(content), mode)
	raw, err := s.upstream.Submit(ctx, mode, src.Name, content)
	if err != nil {
		s.logger.Errorf("upstream %s %s: %v", mode, src.Name, err)
		return nil, fmt.Errorf("upstream %s: %w", mode, err)
	}
	return s.Build(raw, src, symbolRate)
}
