package pdftext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

func glyph(s string, x, w, y float64) pdf.Text {
	return pdf.Text{S: s, X: x, W: w, Y: y, FontSize: 10}
}

func TestWords(t *testing.T) {
	glyphs := []pdf.Text{
		glyph("T", 10, 6, 700), glyph("C", 16, 6, 700), glyph("W", 22, 8, 700), glyph("S", 30, 6, 700),
		glyph(" ", 36, 3, 700),
		glyph("N", 40, 6, 700), glyph("o", 46, 5, 700),
		glyph("A", 60, 6, 700),
		glyph("3", 10, 6, 680),
	}

	got := Words(glyphs, 792, Options{ScaleX: 2, ScaleY: 2})

	want := []domain.Token{
		{Text: "TCWS", X0: 20, Top: 168, X1: 72, Bottom: 188},
		{Text: "No", X0: 80, Top: 168, X1: 102, Bottom: 188},
		{Text: "A", X0: 120, Top: 168, X1: 132, Bottom: 188},
		{Text: "3", X0: 20, Top: 208, X1: 32, Bottom: 228},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Words mismatch (-want +got):\n%s", diff)
	}
}

func TestWords_TopAboveBottom(t *testing.T) {
	for _, tok := range Words([]pdf.Text{glyph("x", 0, 5, 100)}, 792, Options{}) {
		assert.Less(t, tok.Top, tok.Bottom)
	}
}

func TestWords_Empty(t *testing.T) {
	assert.Empty(t, Words(nil, 792, Options{}))
	assert.Empty(t, Words([]pdf.Text{glyph(" ", 0, 3, 100)}, 792, Options{}))
}

func TestLineText(t *testing.T) {
	tokens := []domain.Token{
		{Text: "3", X0: 20, Top: 208, X1: 32, Bottom: 228},
		{Text: "No", X0: 80, Top: 168, X1: 102, Bottom: 188},
		{Text: "TCWS", X0: 20, Top: 169, X1: 72, Bottom: 189},
	}

	assert.Equal(t, "TCWS No\n3", LineText(tokens))
	assert.Equal(t, "", LineText(nil))
}

func TestOptions_ZeroMeansOne(t *testing.T) {
	sx, sy := Options{}.scales()
	assert.Equal(t, 1.0, sx)
	assert.Equal(t, 1.0, sy)
}

// node is an in-memory stand-in for a pdf.Value page tree.
type node struct {
	kind  pdf.ValueKind
	num   float64
	keys  map[string]node
	items []node
}

func (n node) Key(key string) node { return n.keys[key] }
func (n node) Kind() pdf.ValueKind { return n.kind }
func (n node) Len() int            { return len(n.items) }
func (n node) Index(i int) node    { return n.items[i] }
func (n node) Float64() float64    { return n.num }

func mediaBox(x0, y0, x1, y1 float64) node {
	items := []node{{kind: pdf.Real, num: x0}, {kind: pdf.Real, num: y0}, {kind: pdf.Real, num: x1}, {kind: pdf.Real, num: y1}}
	return node{kind: pdf.Array, items: items}
}

func dict(keys map[string]node) node { return node{kind: pdf.Dict, keys: keys} }

func TestMediaBoxHeight(t *testing.T) {
	a4 := mediaBox(0, 0, 595, 842)
	root := dict(map[string]node{"MediaBox": a4})

	tests := []struct {
		name   string
		page   node
		want   float64
		wantOK bool
	}{
		{"own box", dict(map[string]node{"MediaBox": mediaBox(0, 0, 612, 792)}), 792, true},
		{"inherited from parent", dict(map[string]node{"Parent": root}), 842, true},
		{"inherited from grandparent", dict(map[string]node{"Parent": dict(map[string]node{"Parent": root})}), 842, true},
		{"own box wins", dict(map[string]node{"MediaBox": mediaBox(0, 100, 612, 500), "Parent": root}), 400, true},
		{"degenerate box falls through", dict(map[string]node{"MediaBox": mediaBox(0, 10, 10, 10), "Parent": root}), 842, true},
		{"no box anywhere", dict(map[string]node{"Parent": dict(nil)}), 0, false},
		{"not a dictionary", node{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mediaBoxHeight(tt.page)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0)
		})
	}
}

func TestMediaBoxHeight_CyclicTree(t *testing.T) {
	loop := dict(map[string]node{})
	loop.keys["Parent"] = loop

	_, ok := mediaBoxHeight(loop)
	assert.False(t, ok)
}
