// Package bulletintest provides synthetic bulletin documents for tests.
package bulletintest

import (
	"encoding/json"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

const (
	rowHeight = 20
	inset     = 2

	// DocumentID is the id of the document returned by Document.
	DocumentID = "TCB-2024-15-12"
)

// TablePage lays cells out on a page of equal-height rows and columns of the
// given widths, with one detection per row and per column and one token per
// non-empty cell sitting inside it.
func TablePage(number int, widths []float64, cells [][]string) domain.Page {
	page := domain.Page{Number: number}

	var total float64
	edges := make([]float64, len(widths)+1)
	for i, w := range widths {
		total += w
		edges[i+1] = total
	}
	for c := range widths {
		page.Detections = append(page.Detections, domain.DetectedRegion{
			Label: domain.LabelTableColumn, Score: 0.95,
			Box: [4]float64{edges[c], 0, edges[c+1], float64(len(cells) * rowHeight)},
		})
	}

	for r, row := range cells {
		top := float64(r * rowHeight)
		page.Detections = append(page.Detections, domain.DetectedRegion{
			Label: domain.LabelTableRow, Score: 0.97,
			Box: [4]float64{0, top, total, top + rowHeight},
		})
		for c, text := range row {
			if text == "" || c >= len(widths) {
				continue
			}
			page.Tokens = append(page.Tokens, domain.Token{
				Text: text,
				X0:   edges[c] + inset, Top: top + inset,
				X1: edges[c+1] - inset, Bottom: top + rowHeight - inset,
			})
		}
	}
	return page
}

// Document returns a three-page bulletin: a header table, a wind signal
// table with a rainfall outlook in its text layer, and a page the detector
// found no table on.
func Document() domain.Document {
	header := TablePage(1, []float64{100, 200}, [][]string{
		{"Location of Center", "300 km East of Aparri, Cagayan"},
		{"Present Movement", "West Northwestward at 20 km/h"},
		{"Intensity", "Maximum sustained winds of 85 km/h"},
		{"Issued at", "11:00 PM, 22 October 2024"},
	})

	signals := TablePage(2, []float64{80, 120, 120, 120}, [][]string{
		{"TCWS No.", "Luzon", "Visayas", "Mindanao"},
		{"2", "Cagayan, Isabela", "-", "-"},
		{"1", "Aurora", "Northern Samar", "-"},
	})
	signals.Text = "Heavy Rainfall Outlook\nModerate to heavy rains over Batanes, Leyte."

	blank := domain.Page{
		Number: 3,
		Tokens: []domain.Token{{Text: "Prepared", X0: 10, Top: 10, X1: 60, Bottom: 20}},
	}

	return domain.Document{
		ID:     DocumentID,
		Source: "PAGASA_24-TC15_Kristine_TCB#12.pdf",
		Pages:  []domain.Page{header, signals, blank},
	}
}

// DocumentJSON returns Document encoded as a source topic message value.
func DocumentJSON() []byte {
	data, err := json.Marshal(Document())
	if err != nil {
		panic(err)
	}
	return data
}
