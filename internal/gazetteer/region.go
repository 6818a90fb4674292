package gazetteer

import (
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

type adminRegion struct {
	name   string // lowercased
	region domain.Region
}

// administrativeRegions maps administrative region names to island groups.
// Order matters for the substring pass.
var administrativeRegions = []adminRegion{
	{"ilocos region", domain.Luzon},
	{"cagayan valley", domain.Luzon},
	{"central luzon", domain.Luzon},
	{"calabarzon", domain.Luzon},
	{"mimaropa", domain.Luzon},
	{"bicol region", domain.Luzon},
	{"western visayas", domain.Visayas},
	{"central visayas", domain.Visayas},
	{"eastern visayas", domain.Visayas},
	{"zamboanga peninsula", domain.Mindanao},
	{"northern mindanao", domain.Mindanao},
	{"davao region", domain.Mindanao},
	{"soccsksargen", domain.Mindanao},
	{"caraga", domain.Mindanao},
	{"bangsamoro", domain.Mindanao},
	{"barmm", domain.Mindanao},
	{"national capital region", domain.Luzon},
	{"ncr", domain.Luzon},
	{"cordillera administrative region", domain.Luzon},
	{"car", domain.Luzon},
}

// classifyAdministrativeRegion expects a lowercased, trimmed key. Each region
// is tested by equality first, then containment in either direction.
func classifyAdministrativeRegion(key string) (domain.Region, bool) {
	for _, r := range administrativeRegions {
		if r.name == key {
			return r.region, true
		}
		if strings.Contains(key, r.name) || strings.Contains(r.name, key) {
			return r.region, true
		}
	}
	return "", false
}
