package reference

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProjectType string

const (
	ProjectReforestation   ProjectType = "reforestation"
	ProjectRenewableEnergy ProjectType = "renewable-energy"
	ProjectCarbonCapture   ProjectType = "carbon-capture"
	ProjectConservation    ProjectType = "conservation"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPlanning  ProjectStatus = "planning"
	ProjectFunding   ProjectStatus = "funding"
)

// Project is an investable carbon project. CO2 figures are in tons and
// Investment is in USD.
type Project struct {
	ID          string
	Name        string
	Description string
	Type        ProjectType
	Location    string
	Status      ProjectStatus
	Progress    int
	CO2Reduced  decimal.Decimal
	Target      decimal.Decimal
	Start       time.Time
	End         time.Time
	Investment  decimal.Decimal
	Investors   int
	SensorID    string
}

// Investable reports whether the project still accepts investments.
func (p Project) Investable() bool {
	return p.Status != ProjectCompleted
}

func Projects() []Project {
	return []Project{
		{
			ID:          "proj-001",
			Name:        "Amazon Rainforest Conservation",
			Description: "Large-scale conservation project protecting 10,000 hectares of pristine Amazon rainforest with continuous CO₂ monitoring.",
			Type:        ProjectConservation,
			Location:    "Amazon Basin, Brazil",
			Status:      ProjectActive,
			Progress:    78,
			CO2Reduced:  decimal.NewFromInt(2450),
			Target:      decimal.NewFromInt(3200),
			Start:       day(2023, time.January, 15),
			End:         day(2025, time.December, 31),
			Investment:  decimal.NewFromInt(850000),
			Investors:   124,
			SensorID:    "co2-sensor-001",
		},
		{
			ID:          "proj-002",
			Name:        "Urban Reforestation Initiative",
			Description: "City-wide tree planting program with smart CO₂ monitoring to track urban air quality improvements.",
			Type:        ProjectReforestation,
			Location:    "Central Park, New York",
			Status:      ProjectActive,
			Progress:    65,
			CO2Reduced:  decimal.NewFromInt(1820),
			Target:      decimal.NewFromInt(2800),
			Start:       day(2023, time.March, 1),
			End:         day(2024, time.November, 30),
			Investment:  decimal.NewFromInt(420000),
			Investors:   89,
			SensorID:    "co2-sensor-002",
		},
		{
			ID:          "proj-003",
			Name:        "Coastal Wind Farm",
			Description: "Offshore wind energy project generating clean electricity with real-time emission offset tracking.",
			Type:        ProjectRenewableEnergy,
			Location:    "Lake Michigan Shore",
			Status:      ProjectPlanning,
			Progress:    25,
			CO2Reduced:  decimal.NewFromInt(650),
			Target:      decimal.NewFromInt(4500),
			Start:       day(2024, time.January, 1),
			End:         day(2026, time.June, 30),
			Investment:  decimal.NewFromInt(1200000),
			Investors:   67,
			SensorID:    "co2-sensor-003",
		},
		{
			ID:          "proj-004",
			Name:        "Mountain Carbon Capture",
			Description: "Advanced carbon capture and storage facility in mountainous region with precision CO₂ monitoring.",
			Type:        ProjectCarbonCapture,
			Location:    "Rocky Mountains, Colorado",
			Status:      ProjectFunding,
			Progress:    12,
			CO2Reduced:  decimal.NewFromInt(280),
			Target:      decimal.NewFromInt(5000),
			Start:       day(2024, time.June, 1),
			End:         day(2027, time.December, 31),
			Investment:  decimal.NewFromInt(2100000),
			Investors:   45,
			SensorID:    "co2-sensor-004",
		},
		{
			ID:          "proj-005",
			Name:        "Coastal Restoration Project",
			Description: "Mangrove restoration and marine conservation with integrated environmental monitoring systems.",
			Type:        ProjectConservation,
			Location:    "Santa Monica, California",
			Status:      ProjectCompleted,
			Progress:    100,
			CO2Reduced:  decimal.NewFromInt(3200),
			Target:      decimal.NewFromInt(3200),
			Start:       day(2022, time.January, 1),
			End:         day(2023, time.December, 31),
			Investment:  decimal.NewFromInt(680000),
			Investors:   156,
			SensorID:    "co2-sensor-005",
		},
	}
}

// FindProject matches by id or, case-insensitively, by name.
func FindProject(ref string) (Project, bool) {
	ref = strings.TrimSpace(ref)
	for _, p := range Projects() {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return Project{}, false
}
