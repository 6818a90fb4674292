// Package bulletin assembles a Record from every page of a bulletin
// document: page grids are reconstructed and stacked into one table, then
// the header fields, the wind signal table and the rainfall outlook are read
// from it.
package bulletin

import (
	"log/slog"
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/advisory"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/fields"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/gazetteer"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/grid"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/header"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/observability"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/rainfall"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/signals"
)

// Extractor turns documents into records. It is safe for concurrent use
// when its classifier is.
type Extractor struct {
	aliases    header.Aliases
	classifier gazetteer.Classifier
	signals    *signals.Parser
	rainfall   *rainfall.Parser
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewExtractor creates an Extractor matching headers against aliases and
// classifying places with c.
func NewExtractor(aliases header.Aliases, c gazetteer.Classifier, logger *slog.Logger, metrics *observability.Metrics) *Extractor {
	return &Extractor{
		aliases:    aliases,
		classifier: c,
		signals:    signals.NewParser(aliases.Signals, c),
		rainfall:   rainfall.NewParser(c),
		logger:     logger,
		metrics:    metrics,
	}
}

// Extract reads one document. Missing structure never fails extraction; the
// affected fields are left empty.
func (e *Extractor) Extract(doc domain.Document) domain.Record {
	rec := domain.NewRecord(doc)
	rows, text := e.assemble(doc)

	rec.Location = e.field(domain.KeyLocation, fields.Extract(rows, e.aliases.Location))
	rec.Movement = e.field(domain.KeyMovement, fields.Extract(rows, e.aliases.Movement))
	rec.Windspeed = e.field(domain.KeyWindspeed, fields.Extract(rows, e.aliases.Windspeed))
	rec.UpdatedDatetime = e.field(domain.KeyUpdatedDatetime, fields.ExtractDatetime(rows, e.aliases.UpdatedDatetime))

	table, layout := e.signals.Parse(rows, text)
	e.metrics.SignalLayouts.WithLabelValues(string(layout)).Inc()
	rec.Signals = table
	rec.Rainfall = e.rainfall.Parse(text)

	e.logger.Debug("document extracted",
		"document_id", doc.ID,
		"pages", len(doc.Pages),
		"rows", len(rows),
		"signal_layout", layout,
	)
	return rec
}

// ApplyAdvisory replaces the record's rainfall levels with those of a
// weather advisory when the advisory lists any place.
func (e *Extractor) ApplyAdvisory(rec *domain.Record, w advisory.Warnings) {
	if w.IsEmpty() {
		return
	}
	rec.Rainfall = w.Table(e.classifier)
}

// assemble reconstructs each page grid and stacks the rows. The document
// text is the stacked grid followed by each page's own text layer.
func (e *Extractor) assemble(doc domain.Document) (domain.Grid, string) {
	var (
		rows  domain.Grid
		texts []string
	)
	for _, page := range doc.Pages {
		g := grid.FromDetections(page.Detections, page.Tokens)
		if len(g) == 0 {
			e.metrics.PagesWithoutStructure.Inc()
			e.logger.Warn("no table structure detected", "document_id", doc.ID, "page", page.Number)
		} else {
			e.logger.Debug("grid reconstructed", "document_id", doc.ID, "page", page.Number, "rows", len(g), "cols", len(g[0]))
		}
		rows = append(rows, g...)
		if t := strings.TrimSpace(page.Text); t != "" {
			texts = append(texts, t)
		}
	}

	parts := texts
	if gt := rows.Text(); strings.TrimSpace(gt) != "" {
		parts = append([]string{gt}, texts...)
	}
	return rows, strings.Join(parts, "\n")
}

func (e *Extractor) field(key string, f domain.Field) domain.Field {
	e.metrics.ObserveField(key, f.Value != nil)
	return f
}
