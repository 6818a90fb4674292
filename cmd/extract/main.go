// Command extract runs the bulletin engine on one document offline and
// prints the extracted record as JSON.
//
// The document is read from exactly one of:
//
//   - a document JSON file in the source topic format (-doc)
//   - an hOCR file (-hocr)
//   - a PDF text layer (-pdf)
//
// hOCR and PDF sources carry no detections, so -detections may name a JSON
// object mapping page numbers to detector output. An advisory HTML page
// (-advisory) replaces the bulletin's rainfall levels.
//
// Usage:
//
//	go run ./cmd/extract -pdf TCB#12.pdf -detections TCB#12.detections.json \
//	  -scale 2.0833 -advisory advisory.html -mode dataset -out TCB#12.json
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/adapter/hocr"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/adapter/pdftext"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/advisory"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/bulletin"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/config"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/gazetteer"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/locations"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/observability"
)

type options struct {
	doc        string
	hocr       string
	pdf        string
	detections string
	scale      float64
	advisory   string
	gazetteer  string
	aliases    string
	mode       string
	out        string
	verbose    bool
}

func main() {
	var o options
	flag.StringVar(&o.doc, "doc", "", "document JSON file")
	flag.StringVar(&o.hocr, "hocr", "", "hOCR file")
	flag.StringVar(&o.pdf, "pdf", "", "PDF file with a text layer")
	flag.StringVar(&o.detections, "detections", "", "JSON object of page number to detections, for -hocr and -pdf")
	flag.Float64Var(&o.scale, "scale", 1, "PDF point to pixel scale, for -pdf")
	flag.StringVar(&o.advisory, "advisory", "", "weather advisory HTML page")
	flag.StringVar(&o.gazetteer, "gazetteer", "", "gazetteer CSV or SQLite file (default: embedded)")
	flag.StringVar(&o.aliases, "aliases", "", "YAML header alias overrides")
	flag.StringVar(&o.mode, "mode", domain.ModeConfidence, "output mode: confidence or dataset")
	flag.StringVar(&o.out, "out", "", "output file (default: stdout)")
	flag.BoolVar(&o.verbose, "v", false, "log extraction details to stderr")
	flag.Parse()

	if err := run(context.Background(), o, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	doc, err := loadDocument(o)
	if err != nil {
		return err
	}

	gaz, err := gazetteer.Open(ctx, o.gazetteer)
	if err != nil {
		return fmt.Errorf("open gazetteer: %w", err)
	}
	aliases, err := config.LoadAliases(o.aliases)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	extractor := bulletin.NewExtractor(aliases, gaz, logger, observability.NewUnregisteredMetrics())
	rec := extractor.Extract(doc)

	if o.advisory != "" {
		w, err := readAdvisory(o.advisory, gaz)
		if err != nil {
			return err
		}
		extractor.ApplyAdvisory(&rec, w)
		logger.Info("advisory applied", "red", len(w.Red), "orange", len(w.Orange), "yellow", len(w.Yellow))
	}

	data, err := domain.EncodeRecord(rec, o.mode)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("format record: %w", err)
	}
	pretty.WriteByte('\n')

	if o.out == "" {
		_, err = stdout.Write(pretty.Bytes())
		return err
	}
	if err := os.MkdirAll(filepath.Dir(o.out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(o.out, pretty.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	log.Printf("wrote %s", o.out)
	printSummary(os.Stderr, rec)
	return nil
}

// loadDocument builds the document from whichever source flag is set.
func loadDocument(o options) (domain.Document, error) {
	var set int
	for _, p := range []string{o.doc, o.hocr, o.pdf} {
		if p != "" {
			set++
		}
	}
	if set != 1 {
		flag.Usage()
		return domain.Document{}, fmt.Errorf("exactly one of -doc, -hocr, -pdf is required")
	}

	if o.doc != "" {
		data, err := os.ReadFile(o.doc)
		if err != nil {
			return domain.Document{}, fmt.Errorf("read document: %w", err)
		}
		return domain.ParseRawEvent(domain.RawEvent{Value: data})
	}

	var (
		pages []domain.Page
		path  string
		err   error
	)
	if o.hocr != "" {
		path = o.hocr
		var data []byte
		if data, err = os.ReadFile(path); err != nil {
			return domain.Document{}, fmt.Errorf("read hocr: %w", err)
		}
		pages, err = hocr.Parse(data)
	} else {
		path = o.pdf
		pages, err = pdftext.Open(path, pdftext.Options{ScaleX: o.scale, ScaleY: o.scale})
	}
	if err != nil {
		return domain.Document{}, err
	}

	if o.detections != "" {
		if err := attachDetections(pages, o.detections); err != nil {
			return domain.Document{}, err
		}
	}

	name := filepath.Base(path)
	return domain.Document{
		ID:     strings.TrimSuffix(name, filepath.Ext(name)),
		Source: name,
		Pages:  pages,
	}, nil
}

// attachDetections reads a {"1": [...], "2": [...]} file and sets each
// page's detections by page number.
func attachDetections(pages []domain.Page, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read detections: %w", err)
	}
	var byPage map[int][]domain.DetectedRegion
	if err := json.Unmarshal(data, &byPage); err != nil {
		return fmt.Errorf("parse detections: %w", err)
	}
	for i := range pages {
		pages[i].Detections = byPage[pages[i].Number]
	}
	return nil
}

func readAdvisory(path string, gaz *gazetteer.Gazetteer) (advisory.Warnings, error) {
	f, err := os.Open(path)
	if err != nil {
		return advisory.Warnings{}, fmt.Errorf("open advisory: %w", err)
	}
	defer f.Close()

	text, err := advisory.ExtractText(f)
	if err != nil {
		return advisory.Warnings{}, err
	}
	return advisory.Parse(text, locations.NewTokenizer(gaz)), nil
}

func printSummary(w io.Writer, rec domain.Record) {
	found := 0
	for _, f := range []domain.Field{rec.Location, rec.Movement, rec.Windspeed, rec.UpdatedDatetime} {
		if f.Value != nil {
			found++
		}
	}
	fmt.Fprintf(w, "document:  %s\n", rec.DocumentID)
	fmt.Fprintf(w, "fields:    %d/4\n", found)
	fmt.Fprint(w, "signals:  ")
	for level := 1; level <= domain.SignalLevels; level++ {
		if !rec.Signals.Level(level).IsEmpty() {
			fmt.Fprintf(w, " %d", level)
		}
	}
	fmt.Fprint(w, "\nrainfall: ")
	for level := 1; level <= domain.RainfallLevels; level++ {
		if !rec.Rainfall.Level(level).IsEmpty() {
			fmt.Fprintf(w, " %d", level)
		}
	}
	fmt.Fprintln(w)
}
