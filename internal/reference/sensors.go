// Package reference holds the read-only demo data shown by the application:
// the CO2 sensor catalog, synthetic sensor history, sample offsets, the
// project catalog and reduction tips.
package reference

import (
	"errors"
	"time"
)

var ErrUnknownSensor = errors.New("unknown sensor")

type SensorStatus string

const (
	SensorOnline      SensorStatus = "online"
	SensorOffline     SensorStatus = "offline"
	SensorMaintenance SensorStatus = "maintenance"
)

type Location struct {
	Lat  float64
	Lng  float64
	Name string
}

// Reading is a single CO2 concentration sample in ppm.
type Reading struct {
	CO2       int
	Timestamp time.Time
}

type Sensor struct {
	ID       string
	Name     string
	Location Location
	Status   SensorStatus
	Last     Reading
}

// Catalog is an immutable list of sensors.
type Catalog struct {
	sensors []Sensor
}

func NewCatalog(sensors []Sensor) *Catalog {
	c := &Catalog{sensors: make([]Sensor, len(sensors))}
	copy(c.sensors, sensors)
	return c
}

// DemoCatalog returns the five demo sensors with last readings relative to now.
func DemoCatalog(now time.Time) *Catalog {
	return NewCatalog([]Sensor{
		{
			ID:       "co2-sensor-001",
			Name:     "Forest CO₂ Monitor",
			Location: Location{Lat: 37.7749, Lng: -122.4194, Name: "San Francisco Forest Conservation Area"},
			Status:   SensorOnline,
			Last:     Reading{CO2: 412, Timestamp: now.Add(-5 * time.Minute)},
		},
		{
			ID:       "co2-sensor-002",
			Name:     "Urban CO₂ Tracker",
			Location: Location{Lat: 40.7128, Lng: -74.0060, Name: "Central Park Reforestation Zone"},
			Status:   SensorOnline,
			Last:     Reading{CO2: 432, Timestamp: now.Add(-2 * time.Minute)},
		},
		{
			ID:       "co2-sensor-003",
			Name:     "Wind Farm CO₂ Monitor",
			Location: Location{Lat: 41.8781, Lng: -87.6298, Name: "Lake Michigan Wind Project"},
			Status:   SensorMaintenance,
			Last:     Reading{CO2: 405, Timestamp: now.Add(-24 * time.Hour)},
		},
		{
			ID:       "co2-sensor-004",
			Name:     "Carbon Capture CO₂ Sensor",
			Location: Location{Lat: 39.7392, Lng: -104.9903, Name: "Rocky Mountain Carbon Facility"},
			Status:   SensorOffline,
			Last:     Reading{CO2: 398, Timestamp: now.Add(-48 * time.Hour)},
		},
		{
			ID:       "co2-sensor-005",
			Name:     "Coastal Restoration CO₂ Monitor",
			Location: Location{Lat: 34.0522, Lng: -118.2437, Name: "Santa Monica Marine Conservation"},
			Status:   SensorOnline,
			Last:     Reading{CO2: 421, Timestamp: now.Add(-3 * time.Minute)},
		},
	})
}

func (c *Catalog) Sensors() []Sensor {
	out := make([]Sensor, len(c.sensors))
	copy(out, c.sensors)
	return out
}

func (c *Catalog) Find(id string) (Sensor, error) {
	for _, s := range c.sensors {
		if s.ID == id {
			return s, nil
		}
	}
	return Sensor{}, ErrUnknownSensor
}

// ActiveCount is the number of sensors currently online.
func (c *Catalog) ActiveCount() int {
	n := 0
	for _, s := range c.sensors {
		if s.Status == SensorOnline {
			n++
		}
	}
	return n
}
