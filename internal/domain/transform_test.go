package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocumentID = "TCB-2024-15"

func TestParseRawEvent(t *testing.T) {
	t.Run("document with pages", func(t *testing.T) {
		data := []byte(`{"id":"TCB-2024-15","source":"TCB#12.pdf","pages":[{"number":1,"tokens":[{"text":"TCWS","x0":10,"top":5,"x1":50,"bottom":20}],"detections":[{"label":"table row","score":0.9,"box":[0,0,400,30]}],"text":"raw"}]}`)
		doc, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		assert.Equal(t, testDocumentID, doc.ID)
		assert.Equal(t, "TCB#12.pdf", doc.Source)
		require.Len(t, doc.Pages, 1)
		assert.Equal(t, 1, doc.Pages[0].Number)
		assert.Equal(t, "TCWS", doc.Pages[0].Tokens[0].Text)
		assert.Equal(t, LabelTableRow, doc.Pages[0].Detections[0].Label)
		assert.Equal(t, Box{X0: 0, Y0: 0, X1: 400, Y1: 30}, doc.Pages[0].Detections[0].Bounds())
		assert.Equal(t, "raw", doc.Pages[0].Text)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte("not json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse raw event")
	})

	t.Run("no pages", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"id":"x","pages":[]}`)})
		require.Error(t, err)
	})

	t.Run("deterministic ID when missing", func(t *testing.T) {
		data := []byte(`{"pages":[{"number":1}]}`)
		a, err := ParseRawEvent(RawEvent{Value: data})
		require.NoError(t, err)
		b, err := ParseRawEvent(RawEvent{Value: data})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(a.ID, "bulletin-"))
		assert.Len(t, a.ID, len("bulletin-")+16)
		assert.Equal(t, a.ID, b.ID)
	})
}

func TestNewRecord_StampsProcessedAt(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.October, 24, 3, 0, 0, 0, time.UTC))
	SetClock(fakeClock)
	t.Cleanup(func() { SetClock(nil) })

	rec := NewRecord(Document{ID: testDocumentID, Source: "TCB#12.pdf"})

	assert.Equal(t, testDocumentID, rec.DocumentID)
	assert.Equal(t, "TCB#12.pdf", rec.Source)
	assert.Equal(t, fakeClock.Now(), rec.ProcessedAt)
}

func TestEncodeRecord(t *testing.T) {
	rec := Record{Location: NewField("15.0N 120.0E", 0.9)}
	rec.Signals.Set(3, Luzon, "Cagayan")

	t.Run("confidence mode", func(t *testing.T) {
		data, err := EncodeRecord(rec, ModeConfidence)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, map[string]any{"value": "15.0N 120.0E", "confidence": 0.9}, m[KeyLocation])
		assert.Equal(t, "Cagayan", m["signal_warning_tags3"].(map[string]any)["Luzon"])
	})

	t.Run("dataset mode", func(t *testing.T) {
		data, err := EncodeRecord(rec, ModeDataset)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "15.0N 120.0E", m[KeyLocation])
		assert.Nil(t, m[KeyMovement])
		assert.NotContains(t, string(data), "confidence")
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := EncodeRecord(rec, "verbose")
		require.Error(t, err)
	})
}

func TestSerializeRecord(t *testing.T) {
	rec := Record{
		DocumentID:  testDocumentID,
		Movement:    NewField("Northward slowly", 1),
		ProcessedAt: time.Date(2024, time.October, 24, 3, 0, 0, 0, time.UTC),
	}

	out, err := SerializeRecord(rec, ModeDataset)
	require.NoError(t, err)

	assert.Equal(t, []byte(testDocumentID), out.Key)
	assert.Equal(t, testDocumentID, out.Headers["document_id"])
	assert.Equal(t, "2024-10-24T03:00:00Z", out.Headers["processed_at"])
	assert.Contains(t, string(out.Value), `"typhoon_movement":"Northward slowly"`)

	_, err = SerializeRecord(rec, "verbose")
	require.Error(t, err)
}
