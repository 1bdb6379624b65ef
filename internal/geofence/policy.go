package geofence

import "math"

const (
	DefaultMaxAccuracyMeters = 40
	DefaultMaxDistanceMeters = 80
)

// Verdict is the outcome of evaluating a reported location against a
// company geofence.
type Verdict int

const (
	VerdictAccepted Verdict = iota
	VerdictInvalidCoordinates
	VerdictMissingSite
	VerdictImprecise
	VerdictOutOfRange
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccepted:
		return "ACCEPTED"
	case VerdictInvalidCoordinates:
		return "INVALID_COORDINATES"
	case VerdictMissingSite:
		return "MISSING_SITE"
	case VerdictImprecise:
		return "IMPRECISE"
	case VerdictOutOfRange:
		return "OUT_OF_RANGE"
	default:
		return "UNKNOWN"
	}
}

// Report is an employee's location fix. Accuracy is the GPS uncertainty
// radius in meters; nil means the device did not report one.
type Report struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
}

// Site is a company's registered reference point. Coordinates are pointers
// because provisioning may never have set them.
type Site struct {
	Latitude  *float64
	Longitude *float64
}

// Valid reports whether the site has usable coordinates. Nil or non-finite
// values are unusable. The exact pair (0,0) is treated as unconfigured
// because legacy records stored unset coordinates as zero; a single zero
// coordinate (equator or prime meridian) is legitimate.
func (s Site) Valid() bool {
	if s.Latitude == nil || s.Longitude == nil {
		return false
	}
	if !isFinite(*s.Latitude) || !isFinite(*s.Longitude) {
		return false
	}
	if *s.Latitude == 0 && *s.Longitude == 0 {
		return false
	}
	return true
}

type Policy struct {
	MaxAccuracyMeters float64
	MaxDistanceMeters float64
}

// NewPolicy builds a policy, falling back to the defaults for any
// non-positive threshold.
func NewPolicy(maxAccuracyMeters, maxDistanceMeters float64) Policy {
	if maxAccuracyMeters <= 0 {
		maxAccuracyMeters = DefaultMaxAccuracyMeters
	}
	if maxDistanceMeters <= 0 {
		maxDistanceMeters = DefaultMaxDistanceMeters
	}
	return Policy{
		MaxAccuracyMeters: maxAccuracyMeters,
		MaxDistanceMeters: maxDistanceMeters,
	}
}

// Evaluation carries the verdict plus the numbers user-facing messages need.
// DistanceMeters is unrounded; presentation rounds it.
type Evaluation struct {
	Verdict        Verdict
	DistanceMeters float64
	AccuracyMeters float64
}

// Evaluate applies the admission checks in order, first failure wins:
// report coordinates must be finite, the site must be configured, a reported
// accuracy must be within bounds, and only then is the distance computed and
// compared. A malformed report never reaches the distance computation, and
// an imprecise fix is rejected even when it happens to be in range. Absent
// accuracy is trusted. The distance boundary is inclusive: exactly
// MaxDistanceMeters is accepted.
func (p Policy) Evaluate(report Report, site Site) Evaluation {
	if !isFinite(report.Latitude) || !isFinite(report.Longitude) {
		return Evaluation{Verdict: VerdictInvalidCoordinates}
	}

	if !site.Valid() {
		return Evaluation{Verdict: VerdictMissingSite}
	}

	if report.Accuracy != nil && *report.Accuracy > p.MaxAccuracyMeters {
		return Evaluation{Verdict: VerdictImprecise, AccuracyMeters: *report.Accuracy}
	}

	distance := DistanceMeters(report.Latitude, report.Longitude, *site.Latitude, *site.Longitude)
	if distance > p.MaxDistanceMeters {
		return Evaluation{Verdict: VerdictOutOfRange, DistanceMeters: distance}
	}

	out := Evaluation{Verdict: VerdictAccepted, DistanceMeters: distance}
	if report.Accuracy != nil {
		out.AccuracyMeters = *report.Accuracy
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
