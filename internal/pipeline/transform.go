package pipeline

import (
	"context"
	"log/slog"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

// RecordExtractor reads a record out of a decoded bulletin document.
type RecordExtractor interface {
	Extract(doc domain.Document) domain.Record
}

// BulletinTransformer implements Transformer by decoding the document,
// extracting its record and serializing it in the configured output mode.
type BulletinTransformer struct {
	extractor RecordExtractor
	mode      string
	logger    *slog.Logger
}

// NewTransformer creates a BulletinTransformer writing records in mode
// (domain.ModeConfidence or domain.ModeDataset).
func NewTransformer(extractor RecordExtractor, mode string, logger *slog.Logger) *BulletinTransformer {
	return &BulletinTransformer{
		extractor: extractor,
		mode:      mode,
		logger:    logger,
	}
}

func (t *BulletinTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	doc, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	rec := t.extractor.Extract(doc)
	out, err := domain.SerializeRecord(rec, t.mode)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.logger.Debug("bulletin transformed", "document_id", doc.ID, "pages", len(doc.Pages), "bytes", len(out.Value))
	return out, nil
}
