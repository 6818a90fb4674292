// Command validate measures extraction accuracy by comparing extracted record
// JSON files against hand-made annotation JSON files with the same base name.
// Records may be in either output mode; confidences are ignored.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -annotations dataset/pdfs_annotation \
//	  -records out/records
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/header"
)

const (
	// similarThreshold is the Ratio at which a text field counts as matched.
	similarThreshold = 0.8
	// nestedThreshold is the share of sub-keys that must agree for a level
	// field to count as matched.
	nestedThreshold = 0.5

	passAccuracy = 0.65
	warnAccuracy = 0.58
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name    string
	matched int
	total   int
	errors  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func (p *phase) record(ok bool) {
	p.total++
	if ok {
		p.matched++
	}
}

// fileResult is the outcome for one annotation file.
type fileResult struct {
	name     string
	matched  int
	total    int
	missing  bool
	accuracy float64
}

func (r fileResult) status() string {
	switch {
	case r.missing:
		return "error"
	case r.accuracy >= passAccuracy:
		return "pass"
	case r.accuracy >= warnAccuracy:
		return "warn"
	default:
		return "fail"
	}
}

func main() {
	annotations := flag.String("annotations", "", "directory of annotation JSON files")
	records := flag.String("records", "", "directory of extracted record JSON files")
	flag.Parse()

	if *annotations == "" || *records == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*annotations, *records, os.Stdout))
}

func run(annotationsDir, recordsDir string, w io.Writer) int {
	fmt.Fprintln(w, "=== Bulletin Extraction Accuracy ===")
	fmt.Fprintln(w)

	files, err := filepath.Glob(filepath.Join(annotationsDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Fprintf(w, "FATAL: no annotation files in %s\n", annotationsDir)
		return 1
	}
	sort.Strings(files)

	phases := []*phase{
		{name: "Record presence"},
		{name: "Header fields"},
		{name: "Wind signals"},
		{name: "Rainfall warnings"},
	}

	var results []fileResult
	for _, path := range files {
		name := filepath.Base(path)
		res := fileResult{name: name}

		truth, err := loadRecord(path)
		if err != nil {
			phases[0].errorf("%s: annotation: %v", name, err)
			res.missing = true
			results = append(results, res)
			continue
		}
		got, err := loadRecord(filepath.Join(recordsDir, name))
		phases[0].record(err == nil)
		if err != nil {
			phases[0].errorf("%s: record: %v", name, err)
			res.missing = true
			results = append(results, res)
			continue
		}

		keys := make([]string, 0, len(truth))
		for k := range truth {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			ok, detail := compareField(got[key], truth[key])
			res.total++
			if ok {
				res.matched++
			}
			p := phaseFor(phases, key)
			p.record(ok)
			if !ok {
				p.errorf("%s: %s: %s", name, key, detail)
			}
		}
		if res.total > 0 {
			res.accuracy = float64(res.matched) / float64(res.total)
		}
		results = append(results, res)
	}

	return report(w, phases, results)
}

func phaseFor(phases []*phase, key string) *phase {
	switch {
	case strings.HasPrefix(key, "signal_warning_tags"):
		return phases[2]
	case strings.HasPrefix(key, "rainfall_warning_tags"):
		return phases[3]
	default:
		return phases[1]
	}
}

func report(w io.Writer, phases []*phase, results []fileResult) int {
	counts := map[string]int{}
	var matched, total int
	for i, r := range results {
		counts[r.status()]++
		matched += r.matched
		total += r.total
		fmt.Fprintf(w, "[%3d/%3d] %-5s %s (%.1f%%)\n", i+1, len(results), strings.ToUpper(r.status()), r.name, r.accuracy*100)
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-24s %4d/%-4d %s\n", p.name, p.matched, p.total, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files: %d pass, %d warn, %d fail, %d error\n", counts["pass"], counts["warn"], counts["fail"], counts["error"])
	if total > 0 {
		fmt.Fprintf(w, "Field accuracy: %.1f%% (%d/%d)\n", 100*float64(matched)/float64(total), matched, total)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if counts["fail"] == 0 && counts["error"] == 0 {
		if allPassed {
			fmt.Fprintln(w, "\nAll fields matched.")
		}
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// loadRecord reads a record or annotation file with confidences stripped.
func loadRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	m, _ := domain.StripConfidence(v).(map[string]any)
	return m, nil
}

// compareField reports whether got matches want. Objects match when at least
// half their sub-keys are equal; text matches case-insensitively or by
// similarity.
func compareField(got, want any) (bool, string) {
	if wantMap, ok := want.(map[string]any); ok {
		gotMap, _ := got.(map[string]any)
		if len(wantMap) == 0 {
			return true, ""
		}
		var same int
		var diffs []string
		for k, wv := range wantMap {
			gv := gotMap[k]
			if textOf(gv) == textOf(wv) {
				same++
				continue
			}
			diffs = append(diffs, fmt.Sprintf("%s=%q want %q", k, textOf(gv), textOf(wv)))
		}
		sort.Strings(diffs)
		ratio := float64(same) / float64(len(wantMap))
		return ratio >= nestedThreshold, strings.Join(diffs, ", ")
	}

	g, wt := strings.ToLower(textOf(got)), strings.ToLower(textOf(want))
	if g == wt {
		return true, ""
	}
	sim := 0.0
	if g != "" && wt != "" {
		sim = header.Ratio(g, wt)
	}
	return sim >= similarThreshold, fmt.Sprintf("got %q want %q (similarity %.2f)", textOf(got), textOf(want), sim)
}

func textOf(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
