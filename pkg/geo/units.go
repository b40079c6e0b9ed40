package geo

import (
	"strings"

	"github.com/lintang-b-s/transit-access-link/pkg"
)

type MeasurementSystem string

const (
	Customary MeasurementSystem = "customary"
	Metric    MeasurementSystem = "metric"
)

// order matters, it is the order printed in error messages.
var measurementSystems = []MeasurementSystem{Customary, Metric}

func MeasurementSystems() []MeasurementSystem {
	out := make([]MeasurementSystem, len(measurementSystems))
	copy(out, measurementSystems)
	return out
}

// ParseMeasurementSystem returns an ErrInvalidUnitSystem error listing the valid systems if units is unknown.
func ParseMeasurementSystem(units string) (MeasurementSystem, error) {
	for _, ms := range measurementSystems {
		if string(ms) == units {
			return ms, nil
		}
	}

	names := make([]string, 0, len(measurementSystems))
	for _, ms := range measurementSystems {
		names = append(names, string(ms))
	}
	return "", pkg.WrapErrorf(nil, pkg.ErrInvalidUnitSystem,
		"Invalid measurement System: %s ! Please choose one available unit from %s", units, strings.Join(names, ", "))
}

// LengthUnit is the unit of link length for the system: mile or km.
func (ms MeasurementSystem) LengthUnit() string {
	if ms == Metric {
		return "km"
	}
	return "mile"
}

// SpeedTable maps a measurement system to the free speed of an access link, in length unit per hour.
type SpeedTable map[MeasurementSystem]float64

const (
	// 4 ft/s walking speed = 4 * 3600 / 5280 mph
	customaryAccessSpeed = 2.72727
	// 1.22 m/s walking speed = 1.22 * 3600 / 1000 km/h
	metricAccessSpeed = 4.392
)

func DefaultSpeedTable() SpeedTable {
	return SpeedTable{
		Customary: customaryAccessSpeed,
		Metric:    metricAccessSpeed,
	}
}

func (st SpeedTable) Speed(ms MeasurementSystem) (float64, error) {
	speed, ok := st[ms]
	if !ok {
		return 0, pkg.WrapErrorf(nil, pkg.ErrInvalidUnitSystem, "no access link speed configured for measurement system %s", ms)
	}
	return speed, nil
}
