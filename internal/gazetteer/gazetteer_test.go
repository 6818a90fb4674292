package gazetteer

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{Name: "Cagayan", Type: TypeProvince, IslandGroup: "Luzon"},
		{Name: "Batanes", Type: TypeProvince, IslandGroup: "Luzon"},
		{Name: "Isabela", Type: TypeProvince, IslandGroup: "Luzon"},
		{Name: "Leyte", Type: TypeProvince, IslandGroup: "Visayas"},
		{Name: "Davao Oriental", Type: TypeProvince, IslandGroup: "Mindanao"},
		{Name: "San Roque", Type: TypeBarangay, IslandGroup: "Visayas"},
		{Name: "san roque", Type: TypeMunicipality, IslandGroup: "Luzon"},
	}
}

func TestNew_PriorityKeepsHighestType(t *testing.T) {
	g := New([]Entry{
		{Name: "Aurora", Type: TypeBarangay, IslandGroup: "Mindanao"},
		{Name: "AURORA", Type: TypeProvince, IslandGroup: "Luzon"},
		{Name: "aurora", Type: TypeCity, IslandGroup: "Visayas"},
	})

	region, ok := g.Classify("Aurora")
	require.True(t, ok)
	assert.Equal(t, domain.Luzon, region)
	assert.Equal(t, 1, g.Len())
}

func TestNew_EqualPriorityFirstWins(t *testing.T) {
	g := New([]Entry{
		{Name: "Poblacion", Type: TypeBarangay, IslandGroup: "Visayas"},
		{Name: "Poblacion", Type: TypeBarangay, IslandGroup: "Mindanao"},
	})

	region, ok := g.Classify("poblacion")
	require.True(t, ok)
	assert.Equal(t, domain.Visayas, region)
}

func TestClassify(t *testing.T) {
	g := New(testEntries())

	tests := []struct {
		name   string
		in     string
		want   domain.Region
		wantOK bool
	}{
		{"exact", "Cagayan", domain.Luzon, true},
		{"case insensitive", "  LEYTE ", domain.Visayas, true},
		{"priority applied", "San Roque", domain.Luzon, true},
		{"query contains known name", "mainland Cagayan", domain.Luzon, true},
		{"known name contains query", "Oriental", domain.Mindanao, true},
		{"administrative region equality", "Bicol Region", domain.Luzon, true},
		{"administrative region substring", "portions of Eastern Visayas", domain.Visayas, true},
		{"acronym", "BARMM", domain.Mindanao, true},
		{"miss", "Xyzinvalid", "", false},
		{"empty", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Classify(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_SubstringScanFirstSeenWins(t *testing.T) {
	g := New([]Entry{
		{Name: "Santa Cruz", Type: TypeMunicipality, IslandGroup: "Luzon"},
		{Name: "Santa Cruz Norte", Type: TypeBarangay, IslandGroup: "Mindanao"},
	})

	got, ok := g.Classify("Cruz")
	require.True(t, ok)
	assert.Equal(t, domain.Luzon, got)
}

func TestClassify_InvalidIslandGroupIsMiss(t *testing.T) {
	g := New([]Entry{{Name: "Atlantis", Type: TypeCity, IslandGroup: ""}})

	_, ok := g.Classify("Atlantis")
	assert.False(t, ok)
}

func TestIsValidName(t *testing.T) {
	g := New(testEntries())

	assert.True(t, g.IsValidName("Batanes"))
	assert.True(t, g.IsValidName("isabela"))
	assert.True(t, g.IsValidName("Batanes (Itbayat)"), "any word may match")
	assert.False(t, g.IsValidName("Xyzinvalid"))
	assert.False(t, g.IsValidName(""))

	empty := New(nil)
	assert.True(t, empty.IsValidName("anything at all"))
}

func TestDefault(t *testing.T) {
	g := Default()
	require.Positive(t, g.Len())

	tests := []struct {
		in   string
		want domain.Region
	}{
		{"Batanes", domain.Luzon},
		{"Quezon", domain.Luzon},
		{"Samar", domain.Visayas},
		{"Northern Samar", domain.Visayas},
		{"Surigao del Norte", domain.Mindanao},
		{"Metro Manila", domain.Luzon},
		{"CALABARZON", domain.Luzon},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := g.Classify(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCSV(t *testing.T) {
	t.Run("reordered header with BOM", func(t *testing.T) {
		data := "\ufeffisland_group,location_name,location_type\nLuzon,Cagayan,Province\nVisayas,Cebu,Province\n"
		entries, err := ReadCSV(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, []Entry{
			{Name: "Cagayan", Type: TypeProvince, IslandGroup: "Luzon"},
			{Name: "Cebu", Type: TypeProvince, IslandGroup: "Visayas"},
		}, entries)
	})

	t.Run("name column only", func(t *testing.T) {
		entries, err := ReadCSV(strings.NewReader("location_name\nCagayan\n"))
		require.NoError(t, err)
		assert.Equal(t, []Entry{{Name: "Cagayan"}}, entries)
	})

	t.Run("missing name column", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("name,type\nCagayan,Province\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "location_name")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		require.Error(t, err)
	})
}

func TestOpen_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.csv")
	require.NoError(t, os.WriteFile(path, []byte("location_name,location_type,island_group\nLeyte,Province,Visayas\n"), 0o600))

	g, err := Open(context.Background(), path)
	require.NoError(t, err)
	got, ok := g.Classify("Leyte")
	require.True(t, ok)
	assert.Equal(t, domain.Visayas, got)
}

func TestOpen_EmptyPathUsesDefault(t *testing.T) {
	g, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), g.Len())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE locations (location_name TEXT, location_type TEXT, island_group TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO locations VALUES
		('Cagayan', 'Province', 'Luzon'),
		('Cagayan', 'Barangay', 'Mindanao'),
		('Bohol', NULL, 'Visayas')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	entries, err := LoadSQLite(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "Cagayan", Type: TypeProvince, IslandGroup: "Luzon"},
		{Name: "Cagayan", Type: TypeBarangay, IslandGroup: "Mindanao"},
		{Name: "Bohol", Type: "", IslandGroup: "Visayas"},
	}, entries)

	g, err := Open(context.Background(), path)
	require.NoError(t, err)
	got, ok := g.Classify("Cagayan")
	require.True(t, ok)
	assert.Equal(t, domain.Luzon, got)
}
