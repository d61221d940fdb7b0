package tz

// boundingBox maps a coarse coordinate rectangle to an IANA timezone id.
type boundingBox struct {
	latMin, latMax float64
	lonMin, lonMax float64
	zone           string
}

// regionBoxes is checked in order; the first hit wins. Entries overlap on
// purpose: smaller, more specific regions come before broader catch-alls,
// so ordering is the tie-break. The table trades political-boundary accuracy
// for zero dependencies; a city a few degrees off may land in a neighbouring
// zone with the same offset.
var regionBoxes = []boundingBox{
	// Europe
	{49.0, 61.0, -8.0, 2.0, "Europe/London"},
	{47.0, 55.0, 2.0, 15.0, "Europe/Paris"},
	{35.0, 48.0, -10.0, 5.0, "Europe/Madrid"},
	{35.0, 48.0, 5.0, 20.0, "Europe/Rome"},
	{44.0, 70.0, 15.0, 40.0, "Europe/Kiev"},
	{55.0, 70.0, 20.0, 180.0, "Europe/Moscow"},

	// North America
	{25.0, 50.0, -125.0, -117.0, "America/Los_Angeles"},
	{25.0, 50.0, -117.0, -104.0, "America/Denver"},
	{25.0, 50.0, -104.0, -80.0, "America/Chicago"},
	{25.0, 50.0, -80.0, -65.0, "America/New_York"},
	{45.0, 70.0, -140.0, -60.0, "America/Toronto"},

	// Asia
	{35.0, 55.0, 100.0, 135.0, "Asia/Shanghai"},
	{30.0, 46.0, 130.0, 146.0, "Asia/Tokyo"},
	{33.0, 43.0, 124.0, 132.0, "Asia/Seoul"},
	{8.0, 37.0, 68.0, 97.0, "Asia/Kolkata"},
	{35.0, 42.0, 26.0, 45.0, "Europe/Istanbul"},

	// Australia & Oceania
	{-45.0, -10.0, 110.0, 155.0, "Australia/Sydney"},
	{-35.0, -15.0, 110.0, 130.0, "Australia/Perth"},

	// South America
	{-35.0, 12.0, -75.0, -35.0, "America/Sao_Paulo"},
	{-55.0, -20.0, -75.0, -53.0, "America/Argentina/Buenos_Aires"},

	// Africa
	{-35.0, 37.0, -20.0, 52.0, "Africa/Cairo"},
}

// lonBands is the fallback when no box matches: eight longitude bands
// spanning -180..180, each pinned to a representative zone.
var lonBands = []struct {
	below float64
	zone  string
}{
	{-120, "America/Los_Angeles"},
	{-90, "America/Chicago"},
	{-60, "America/New_York"},
	{15, "Europe/London"},
	{45, "Europe/Kiev"},
	{90, "Asia/Kolkata"},
	{135, "Asia/Shanghai"},
}

const easternmostZone = "Asia/Tokyo"

// Resolve maps coordinates to an IANA timezone id. It always returns a
// non-empty id and never fails; out-of-range input is not validated.
func Resolve(lat, lon float64) string {
	for _, b := range regionBoxes {
		if b.latMin <= lat && lat <= b.latMax && b.lonMin <= lon && lon <= b.lonMax {
			return b.zone
		}
	}
	for _, band := range lonBands {
		if lon < band.below {
			return band.zone
		}
	}
	return easternmostZone
}
