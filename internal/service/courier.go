package service

import (
	"strings"

	"github.com/SimelweN/rebooked-reads-sub008/internal/dto"
)

// Shipping zone derived from comparing origin and destination.
const (
	ZoneLocal      = "local"
	ZoneProvincial = "provincial"
	ZoneNational   = "national"
)

type CourierQuote struct {
	Zone        string  `json:"zone"`
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
	MinDays     int     `json:"min_days"`
	MaxDays     int     `json:"max_days"`
	CourierName string  `json:"courier_name"`
}

// EstimateQuotes classifies the route into a zone and returns the flat tier
// catalog for it. The parcel descriptor is accepted for API parity with real
// courier integrations; zone pricing does not use it. Callers must treat an
// empty quote list as a valid non-error outcome, never a failure.
func EstimateQuotes(from, to dto.Address, _ dto.Parcel) []CourierQuote {
	zone, ok := classifyZone(from, to)
	if !ok {
		return []CourierQuote{}
	}

	switch zone {
	case ZoneLocal:
		return []CourierQuote{
			{Zone: zone, Service: "overnight", Price: 105, MinDays: 1, MaxDays: 2, CourierName: "The Courier Guy"},
			{Zone: zone, Service: "same-day-economy", Price: 555, MinDays: 0, MaxDays: 1, CourierName: "The Courier Guy"},
		}
	case ZoneProvincial:
		return []CourierQuote{
			{Zone: zone, Service: "road-freight", Price: 140, MinDays: 2, MaxDays: 4, CourierName: "The Courier Guy"},
		}
	default:
		return []CourierQuote{
			{Zone: zone, Service: "road-freight", Price: 180, MinDays: 3, MaxDays: 5, CourierName: "The Courier Guy"},
		}
	}
}

// classifyZone applies a fixed precedence: same province and city is local,
// same province alone is provincial, anything else national. Addresses
// without a usable province cannot be classified.
func classifyZone(from, to dto.Address) (string, bool) {
	fromProvince := normalizePlace(from.Province)
	toProvince := normalizePlace(to.Province)
	if fromProvince == "" || toProvince == "" {
		return "", false
	}

	if fromProvince == toProvince {
		fromCity := normalizePlace(from.City)
		toCity := normalizePlace(to.City)
		if fromCity != "" && fromCity == toCity {
			return ZoneLocal, true
		}
		return ZoneProvincial, true
	}

	return ZoneNational, true
}

func normalizePlace(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
