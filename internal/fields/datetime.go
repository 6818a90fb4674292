package fields

import (
	"regexp"
	"strings"
	"time"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

// unparsedPenalty scales the confidence of a datetime that matched none of
// the known layouts.
const unparsedPenalty = 0.8

// Philippine Standard Time. Bulletins never state the zone.
var pht = time.FixedZone("PHT", 8*60*60)

// datetimeLayouts are tried in order.
var datetimeLayouts = []string{
	"3:04 PM, 2 January 2006",
	"3:04 PM 2 January 2006",
	"15:04, 2 January 2006",
	"January 2, 2006 3:04 PM",
}

var (
	// issuedAtRe matches the "Issued at" lead-in.
	issuedAtRe = regexp.MustCompile(`(?i)issued\s*at\s*`)

	// trailerRe marks where the validity or synopsis clause starts.
	trailerRe = regexp.MustCompile(`(?i)valid|synopsis`)

	// meridiemRe matches am/pm markers in any case, with or without dots.
	meridiemRe = regexp.MustCompile(`(?i)\b([ap])\.?m\b\.?`)
)

// ExtractDatetime extracts the issue time. A value matching a known layout
// is returned as RFC 3339 in UTC+8; anything else is returned cleaned with
// its confidence reduced.
func ExtractDatetime(g domain.Grid, aliases []string) domain.Field {
	f := Extract(g, aliases)
	if f.Value == nil {
		return f
	}
	return ParseDatetime(*f.Value, f.Confidence)
}

// ParseDatetime normalizes a raw issue-time string. See ExtractDatetime.
func ParseDatetime(raw string, confidence float64) domain.Field {
	clean := CleanDatetime(raw)
	if t, ok := parseBulletinTime(clean); ok {
		return domain.NewField(t.Format(time.RFC3339), confidence)
	}
	return domain.NewField(clean, confidence*unparsedPenalty)
}

// CleanDatetime strips the "Issued at" lead-in and any trailing validity or
// synopsis clause.
func CleanDatetime(raw string) string {
	clean := strings.TrimSpace(issuedAtRe.ReplaceAllString(raw, ""))
	if loc := trailerRe.FindStringIndex(clean); loc != nil {
		clean = clean[:loc[0]]
	}
	return strings.TrimSpace(clean)
}

func parseBulletinTime(s string) (time.Time, bool) {
	s = collapseSpace(meridiemRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[:1]) + "M"
	}))
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, pht), true
	}
	return time.Time{}, false
}
