package locations_test

import (
	"testing"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/gazetteer"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/locations"
	"github.com/stretchr/testify/assert"
)

func newTokenizer() *locations.Tokenizer {
	g := gazetteer.New([]gazetteer.Entry{
		{Name: "Batanes", Type: gazetteer.TypeProvince, IslandGroup: "Luzon"},
		{Name: "Cagayan", Type: gazetteer.TypeProvince, IslandGroup: "Luzon"},
		{Name: "Isabela", Type: gazetteer.TypeProvince, IslandGroup: "Luzon"},
		{Name: "Albay", Type: gazetteer.TypeProvince, IslandGroup: "Luzon"},
		{Name: "Sorsogon", Type: gazetteer.TypeProvince, IslandGroup: "Luzon"},
		{Name: "Kalinga", Type: gazetteer.TypeProvince, IslandGroup: "Luzon"},
		{Name: "Northern Samar", Type: gazetteer.TypeProvince, IslandGroup: "Visayas"},
		{Name: "Leyte", Type: gazetteer.TypeProvince, IslandGroup: "Visayas"},
		{Name: "Negros Occidental", Type: gazetteer.TypeProvince, IslandGroup: "Visayas"},
	})
	return locations.NewTokenizer(g)
}

func TestTokenizer_Split(t *testing.T) {
	tok := newTokenizer()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"strict stop at first invalid", "Batanes, Cagayan, Xyzinvalid, Isabela", []string{"Batanes", "Cagayan"}},
		{"trailing and", "Batanes, Cagayan, and Isabela", []string{"Batanes", "Cagayan", "Isabela"}},
		{"standalone and is skipped", "Batanes, and, Isabela", []string{"Batanes", "Isabela"}},
		{"and with column break", "Albay, and Sorsogon Kalinga", []string{"Albay", "Sorsogon", "Kalinga"}},
		{"and with directional pair", "Cagayan, and Northern Samar Leyte", []string{"Cagayan", "Northern Samar", "Leyte"}},
		{"invalid after and stops", "Cagayan, and Xyzinvalid Leyte, Isabela", []string{"Cagayan"}},
		{"suffix merges backwards", "Leyte, Negros, Occidental", []string{"Leyte", "Negros Occidental"}},
		{"directional prefix joins next part", "Cagayan, Northern, Samar", []string{"Cagayan", "Northern Samar"}},
		{"parentheses keep commas", "Batanes (Itbayat, Basco), Cagayan", []string{"Batanes (Itbayat, Basco)", "Cagayan"}},
		{"column gap truncates", "Batanes, Cagayan   Leyte, Albay", []string{"Batanes", "Cagayan"}},
		{"newlines are spaces", "Batanes,\nCagayan", []string{"Batanes", "Cagayan"}},
		{"potential impacts truncates", "Isabela, Albay Potential Impacts: minimal", []string{"Isabela", "Albay"}},
		{"dash", " - ", nil},
		{"empty", "", nil},
		{"dash parts skipped", "-, Batanes", []string{"Batanes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Split(tt.in))
		})
	}
}

func TestTokenizer_NilValidatorAcceptsAll(t *testing.T) {
	tok := locations.NewTokenizer(nil)
	assert.Equal(t, []string{"Foo", "Bar Baz"}, tok.Split("Foo, Bar Baz"))
}

func TestTokenizer_EmptyGazetteerAcceptsAll(t *testing.T) {
	tok := locations.NewTokenizer(gazetteer.New(nil))
	assert.Equal(t, []string{"Foo", "Xyzinvalid"}, tok.Split("Foo, Xyzinvalid"))
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a (b, c), d", []string{"a (b, c)", "d"}},
		{"a ((b, c), d), e", []string{"a ((b, c), d)", "e"}},
		{"a), b", []string{"a)", "b"}},
		{"a,,b", []string{"a", "", "b"}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, locations.SplitTopLevel(tt.in))
		})
	}
}
