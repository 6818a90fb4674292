package domain

import (
	"context"
	"time"
)

// Detection labels consumed by the grid reconstructor. Other labels are ignored.
const (
	LabelTableRow    = "table row"
	LabelTableColumn = "table column"
)

// Token is a word with its bounding box in page pixel space.
type Token struct {
	Text   string  `json:"text"`
	X0     float64 `json:"x0"`
	Top    float64 `json:"top"`
	X1     float64 `json:"x1"`
	Bottom float64 `json:"bottom"`
}

// Box returns the token's bounding box.
func (t Token) Box() Box {
	return Box{X0: t.X0, Y0: t.Top, X1: t.X1, Y1: t.Bottom}
}

// DetectedRegion is one object-detector hit. Box is [x0, y0, x1, y1].
type DetectedRegion struct {
	Label string     `json:"label"`
	Score float64    `json:"score"`
	Box   [4]float64 `json:"box"`
}

// Bounds converts the detector's array box to a Box.
func (d DetectedRegion) Bounds() Box {
	return Box{X0: d.Box[0], Y0: d.Box[1], X1: d.Box[2], Y1: d.Box[3]}
}

// Page is one rendered bulletin page.
type Page struct {
	Number     int              `json:"number"`
	Tokens     []Token          `json:"tokens"`
	Detections []DetectedRegion `json:"detections"`
	// Text is the page's raw text layer, if the producer has one. It feeds the
	// text-based parsers alongside the reconstructed grid.
	Text string `json:"text,omitempty"`
}

// Document is a whole bulletin as published on the source topic.
type Document struct {
	ID     string `json:"id"`
	Source string `json:"source,omitempty"` // original file name
	Pages  []Page `json:"pages"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
