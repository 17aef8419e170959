package geoip

import "strings"

// campaignRegions maps ISO country codes to the region names the translator
// and prompt builder understand. Countries outside the table fall back to a
// global campaign.
var campaignRegions = map[string]string{
	"JP": "Japan",
	"FR": "France",
	"ES": "Spain",
	"DE": "Germany",
	"CN": "China",
	"KR": "South Korea",
	"IT": "Italy",
	"BR": "Brazil",
	"RU": "Russia",
	"ET": "Ethiopia",
}

// RegionForCountry converts an ISO country code into a campaign region name.
// Unknown or empty codes return the provided fallback.
func RegionForCountry(code, fallback string) string {
	if region, ok := campaignRegions[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return region
	}
	return fallback
}
