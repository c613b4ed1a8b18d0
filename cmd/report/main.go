// Command report prints the analytics report for one encoder response.
//
//	report -raw response.json -file input.txt
//	report -upstream http://localhost:8081 -mode encode -file input.txt
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lanhtutoicao123/TSL-CLIENT/internal/model"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/service"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/upstream"
	"github.com/lanhtutoicao123/TSL-CLIENT/pkg/logger"
)

func main() {
	rawPath := flag.String("raw", "", "upstream JSON response to analyse")
	filePath := flag.String("file", "", "source file (name and size)")
	upstreamURL := flag.String("upstream", "", "encoder service base URL; when set, -file is submitted")
	modeFlag := flag.String("mode", "encode", "encode or decode")
	rate := flag.Float64("rate", service.DefaultSymbolRate, "symbols per second for bit rate")
	format := flag.String("format", "text", "text, json or msgpack")
	logLevel := flag.String("log", "warning", "log level")
	flag.Parse()

	if err := run(*rawPath, *filePath, *upstreamURL, *modeFlag, *rate, *format, *logLevel, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(rawPath, filePath, upstreamURL, modeFlag string, rate float64, format, logLevel string, w io.Writer) error {
	if filePath == "" {
		return fmt.Errorf("-file is required")
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	src := model.SourceFile{Name: filepath.Base(filePath), ByteSize: int64(len(content))}
	logg := logger.New("report", logLevel)

	var rep *model.Report
	switch {
	case upstreamURL != "":
		mode, err := model.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		client := upstream.NewClient(upstreamURL, 30*time.Second, logg)
		svc := service.NewReportService(client, logg, rate)
		rep, err = svc.Process(context.Background(), mode, src, content, rate)
		if err != nil {
			return err
		}
	case rawPath != "":
		b, err := os.ReadFile(rawPath)
		if err != nil {
			return err
		}
		var raw model.RawUpstreamResult
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("parse %s: %w", rawPath, err)
		}
		rep, err = service.NewReportService(nil, logg, rate).Build(&raw, src, rate)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of -raw or -upstream is required")
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(rep)
	case "text":
		return printText(w, rep)
	}
	return fmt.Errorf("unknown format %q", format)
}

func printText(w io.Writer, rep *model.Report) error {
	res := rep.Result
	fmt.Fprintf(w, "Report %s\n", rep.ID)
	fmt.Fprintf(w, "File:              %s\n", res.Filename)
	fmt.Fprintf(w, "Original size:     %d bytes\n", res.OriginalSize)
	fmt.Fprintf(w, "Compressed size:   %d bytes\n", res.CompressedSize)
	fmt.Fprintf(w, "Compression ratio: %s%%\n", res.FormattedRatio())
	fmt.Fprintf(w, "CRC:               %d (valid: %t)\n", res.CRC, res.CRCValid)
	if res.Message != "" {
		fmt.Fprintf(w, "Message:           %s\n", res.Message)
	}
	if res.DownloadURL != "" {
		fmt.Fprintf(w, "Download:          %s\n", res.DownloadURL)
	}

	a := rep.Aggregates
	fmt.Fprintf(w, "\nEntropy %.4f  AvgLength %.4f  Variance %.4f  Efficiency %.4f  BitRate %.4f\n",
		a.Entropy, a.AvgLength, a.Variance, a.Efficiency, a.BitRate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nSymbol\tFrequency\tProbability\tCodeword\tLength")
	for _, s := range rep.Symbols {
		fmt.Fprintf(tw, "%q\t%d\t%.4f\t%s\t%d\n", s.Symbol, s.Frequency, s.Probability, s.Codeword, s.Length)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Pivot.Stages) == 0 {
		return nil
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nSymbol\t%s\n", strings.Join(rep.Pivot.Stages, "\t"))
	for _, row := range rep.Pivot.Rows {
		fmt.Fprintf(tw, "%q\t%s\n", row.Symbol, strings.Join(row.Cells, "\t"))
	}
	return tw.Flush()
}
