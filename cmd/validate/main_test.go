package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestCompareField(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want any
		ok   bool
	}{
		{"exact ignoring case", "West Northwestward", "west northwestward", true},
		{"similar", "300 km East of Aparri, Cagayan", "300 km East of Aparri Cagayan", true},
		{"different", "Aparri", "Basco, Batanes", false},
		{"both null", nil, nil, true},
		{"missing", nil, "Basco", false},
		{"half sub-keys", map[string]any{"Luzon": "Cagayan", "Visayas": nil}, map[string]any{"Luzon": "Cagayan", "Visayas": "Leyte"}, true},
		{"too few sub-keys", map[string]any{"Luzon": "Aurora"}, map[string]any{"Luzon": "Cagayan", "Visayas": "Leyte"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := compareField(tt.got, tt.want)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRun(t *testing.T) {
	annotations, records := t.TempDir(), t.TempDir()

	write(t, annotations, "TCB#1.json", `{"typhoon_movement":"Westward at 15 km/h","signal_warning_tags1":{"Luzon":"Aurora","Visayas":null}}`)
	write(t, records, "TCB#1.json", `{"typhoon_movement":{"value":"Westward at 15 km/h","confidence":1},"signal_warning_tags1":{"Luzon":"Aurora","Visayas":null}}`)

	var out bytes.Buffer
	code := run(annotations, records, &out)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "PASS  TCB#1.json (100.0%)")
	assert.Contains(t, out.String(), "All fields matched.")
}

func TestRun_MissingRecordFails(t *testing.T) {
	annotations, records := t.TempDir(), t.TempDir()
	write(t, annotations, "TCB#2.json", `{"typhoon_movement":"Westward"}`)

	var out bytes.Buffer
	code := run(annotations, records, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "ERROR TCB#2.json")
	assert.Contains(t, out.String(), "--- Record presence ---")
}

func TestRun_NoAnnotations(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(t.TempDir(), t.TempDir(), &out))
}
