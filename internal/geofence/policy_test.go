package geofence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func defaultPolicy() Policy {
	return NewPolicy(0, 0)
}

func TestNewPolicy_Defaults(t *testing.T) {
	p := NewPolicy(0, -1)
	assert.Equal(t, float64(DefaultMaxAccuracyMeters), p.MaxAccuracyMeters)
	assert.Equal(t, float64(DefaultMaxDistanceMeters), p.MaxDistanceMeters)
}

func TestPolicy_InvalidCoordinatesWinFirst(t *testing.T) {
	p := defaultPolicy()
	site := Site{Latitude: f64(19.4326), Longitude: f64(-99.1332)}

	// NaN latitude must short-circuit regardless of everything else.
	ev := p.Evaluate(Report{Latitude: math.NaN(), Longitude: -99.1332, Accuracy: f64(5)}, site)
	assert.Equal(t, VerdictInvalidCoordinates, ev.Verdict)

	ev = p.Evaluate(Report{Latitude: 19.4326, Longitude: math.Inf(1)}, site)
	assert.Equal(t, VerdictInvalidCoordinates, ev.Verdict)
}

func TestPolicy_MissingSite(t *testing.T) {
	p := defaultPolicy()
	report := Report{Latitude: 19.4326, Longitude: -99.1332}

	ev := p.Evaluate(report, Site{})
	assert.Equal(t, VerdictMissingSite, ev.Verdict)

	ev = p.Evaluate(report, Site{Latitude: f64(math.NaN()), Longitude: f64(-99.1332)})
	assert.Equal(t, VerdictMissingSite, ev.Verdict)
}

// (0,0) is the legacy "never configured" marker and is rejected as a site.
func TestPolicy_NullIslandUnconfigured(t *testing.T) {
	p := defaultPolicy()
	ev := p.Evaluate(Report{Latitude: 19.4326, Longitude: -99.1332}, Site{Latitude: f64(0), Longitude: f64(0)})
	assert.Equal(t, VerdictMissingSite, ev.Verdict)
}

// A single zero coordinate is a real place; the legacy truthy check that
// rejected it is not preserved.
func TestPolicy_ZeroCoordinateIsValid(t *testing.T) {
	p := defaultPolicy()
	ev := p.Evaluate(Report{Latitude: 0, Longitude: 6.73}, Site{Latitude: f64(0), Longitude: f64(6.73)})
	assert.Equal(t, VerdictAccepted, ev.Verdict)
	assert.InDelta(t, 0, ev.DistanceMeters, 0.001)
}

func TestPolicy_AccuracyPrecedesDistance(t *testing.T) {
	p := defaultPolicy()
	// Roughly 10 m away but with a 45 m accuracy: imprecise wins.
	site := Site{Latitude: f64(19.4326), Longitude: f64(-99.1332)}
	ev := p.Evaluate(Report{Latitude: 19.43269, Longitude: -99.1332, Accuracy: f64(45)}, site)
	assert.Equal(t, VerdictImprecise, ev.Verdict)
	assert.Equal(t, 45.0, ev.AccuracyMeters)
}

func TestPolicy_AbsentAccuracyIsTrusted(t *testing.T) {
	p := defaultPolicy()
	site := Site{Latitude: f64(19.4326), Longitude: f64(-99.1332)}
	ev := p.Evaluate(Report{Latitude: 19.4326, Longitude: -99.1332}, site)
	assert.Equal(t, VerdictAccepted, ev.Verdict)
}

func TestPolicy_DistanceBoundaryInclusive(t *testing.T) {
	site := Site{Latitude: f64(19.4326), Longitude: f64(-99.1332)}
	report := Report{Latitude: 19.43269, Longitude: -99.1332} // ~10 m north

	p := NewPolicy(DefaultMaxAccuracyMeters, 81)
	ev := p.Evaluate(report, site)
	assert.Equal(t, VerdictAccepted, ev.Verdict)

	// Exactly at the boundary is accepted, one meter past is not.
	d := ev.DistanceMeters
	exact := NewPolicy(DefaultMaxAccuracyMeters, d)
	assert.Equal(t, VerdictAccepted, exact.Evaluate(report, site).Verdict)

	tight := NewPolicy(DefaultMaxAccuracyMeters, d-1)
	out := tight.Evaluate(report, site)
	assert.Equal(t, VerdictOutOfRange, out.Verdict)
	assert.Equal(t, d, out.DistanceMeters)
}

func TestPolicy_OutOfRangeCarriesDistance(t *testing.T) {
	p := defaultPolicy()
	site := Site{Latitude: f64(19.4326), Longitude: f64(-99.1332)}
	// ~0.001 degrees of longitude is ~105 m at this latitude.
	ev := p.Evaluate(Report{Latitude: 19.4326, Longitude: -99.1332 + 0.001}, site)
	assert.Equal(t, VerdictOutOfRange, ev.Verdict)
	assert.Greater(t, ev.DistanceMeters, float64(DefaultMaxDistanceMeters))
}
