package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VerificationStatus is the verification state of a carbon offset.
type VerificationStatus string

const (
	StatusVerified VerificationStatus = "verified"
	StatusPending  VerificationStatus = "pending"
	StatusRejected VerificationStatus = "rejected"
)

// ParseVerificationStatus accepts the status names case-insensitively.
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch st := VerificationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusVerified, StatusPending, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown verification status %q", s)
	}
}

// CarbonOffset is an immutable claim of CO2 (in tons) compensated by a project.
type CarbonOffset struct {
	ID                 string             `json:"id" validate:"required"`
	Date               time.Time          `json:"date" validate:"required"`
	Amount             decimal.Decimal    `json:"amount" validate:"gte=0"`
	ProjectName        string             `json:"projectName" validate:"required"`
	VerificationStatus VerificationStatus `json:"verificationStatus" validate:"oneof=verified pending rejected"`
}

func (o CarbonOffset) Validate() error {
	return validate.Struct(o)
}

// DashboardAggregates are derived from the offsets and the sensor catalog.
type DashboardAggregates struct {
	TotalCO2Reduced       decimal.Decimal `json:"totalCo2Reduced" validate:"gte=0"`
	ActiveSensors         int             `json:"activeSensors" validate:"gte=0"`
	TotalProjects         int             `json:"totalProjects" validate:"gte=0"`
	CarbonNeutralProgress int             `json:"carbonNeutralProgress" validate:"gte=0,lte=100"`
}

// PerAccountState is all mutable, account-scoped application data.
type PerAccountState struct {
	Dashboard           DashboardAggregates `json:"dashboard"`
	CarbonOffsets       []CarbonOffset      `json:"carbonOffsets" validate:"dive"`
	CalculatedEmissions decimal.Decimal     `json:"calculatedEmissions" validate:"gte=0"`
	CreditsPurchased    decimal.Decimal     `json:"creditsPurchased" validate:"gte=0"`
}

func (s PerAccountState) Validate() error {
	return validate.Struct(s)
}

// DefaultState returns the zeroed state for an account.
func DefaultState(activeSensors int) PerAccountState {
	return PerAccountState{
		Dashboard: DashboardAggregates{
			TotalCO2Reduced: decimal.Zero,
			ActiveSensors:   activeSensors,
		},
		CarbonOffsets:       []CarbonOffset{},
		CalculatedEmissions: decimal.Zero,
		CreditsPurchased:    decimal.Zero,
	}
}

// Recompute derives the offset aggregates from CarbonOffsets.
func (s *PerAccountState) Recompute() {
	total := decimal.Zero
	for _, o := range s.CarbonOffsets {
		total = total.Add(o.Amount)
	}
	s.Dashboard.TotalCO2Reduced = total
	s.Dashboard.TotalProjects = len(s.CarbonOffsets)
	s.Dashboard.CarbonNeutralProgress = ProgressPercent(total)
}

// Clone returns a copy that shares no slice storage with s.
func (s PerAccountState) Clone() PerAccountState {
	c := s
	c.CarbonOffsets = make([]CarbonOffset, len(s.CarbonOffsets))
	copy(c.CarbonOffsets, s.CarbonOffsets)
	return c
}

// ProgressPercent is one percentage point per ton, rounded half away from
// zero and capped at 100.
func ProgressPercent(totalTons decimal.Decimal) int {
	p := totalTons.Round(0).IntPart()
	switch {
	case p > 100:
		return 100
	case p < 0:
		return 0
	default:
		return int(p)
	}
}
