package form

import (
	"strings"

	"fieldtask/internal/device"
)

// LocationFallback is shown when a position was resolved but no
// address segment could name it.
const LocationFallback = "location detected, name unknown"

// ComposeLocationName builds a human-readable location name from
// address segments. Segments are taken in name, district, city,
// region, country order; blanks are skipped and repeated values keep
// only their first occurrence.
func ComposeLocationName(addr *device.Address) string {
	if addr == nil {
		return LocationFallback
	}

	segments := []string{addr.Name, addr.District, addr.City, addr.Region, addr.Country}
	seen := make(map[string]bool)
	var parts []string
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" || seen[segment] {
			continue
		}
		seen[segment] = true
		parts = append(parts, segment)
	}

	if len(parts) == 0 {
		return LocationFallback
	}
	return strings.Join(parts, ", ")
}
