package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Output modes for serialized records.
const (
	ModeConfidence = "confidence"
	ModeDataset    = "dataset"
)

// ParseRawEvent deserializes a RawEvent's value into a Document. Documents
// published without an id get a deterministic one derived from the payload,
// so replays map to the same downstream key.
func ParseRawEvent(raw RawEvent) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw.Value, &doc); err != nil {
		return Document{}, fmt.Errorf("parse raw event: %w", err)
	}
	if len(doc.Pages) == 0 {
		return Document{}, errors.New("parse raw event: document has no pages")
	}
	doc.ID = strings.TrimSpace(doc.ID)
	if doc.ID == "" {
		doc.ID = generateID(raw.Value)
	}
	return doc, nil
}

// generateID returns "bulletin-" plus the first 16 hex characters of the
// payload's SHA-256.
func generateID(payload []byte) string {
	sum := sha256.Sum256(payload)
	return "bulletin-" + hex.EncodeToString(sum[:])[:16]
}

// NewRecord starts an empty record for doc, stamped with the current time.
func NewRecord(doc Document) Record {
	return Record{
		DocumentID:  doc.ID,
		Source:      doc.Source,
		ProcessedAt: clock.Now().UTC(),
	}
}

// EncodeRecord serializes rec in the given mode. Dataset mode strips every
// confidence value.
func EncodeRecord(rec Record, mode string) ([]byte, error) {
	var v any = rec.Map()
	switch mode {
	case "", ModeConfidence:
	case ModeDataset:
		v = StripConfidence(v)
	default:
		return nil, fmt.Errorf("encode record: unknown output mode %q", mode)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// SerializeRecord encodes rec for the sink topic, keyed by document id.
func SerializeRecord(rec Record, mode string) (OutputEvent, error) {
	data, err := EncodeRecord(rec, mode)
	if err != nil {
		return OutputEvent{}, err
	}
	return OutputEvent{
		Key:   []byte(rec.DocumentID),
		Value: data,
		Headers: map[string]string{
			"document_id":  rec.DocumentID,
			"processed_at": rec.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
