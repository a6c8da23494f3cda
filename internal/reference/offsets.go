package reference

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/ecovate/internal/models"
)

// SampleOffset is a demo offset without an identifier; ids are assigned
// when it is added to an account.
type SampleOffset struct {
	Date        time.Time
	Amount      decimal.Decimal
	ProjectName string
	Status      models.VerificationStatus
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SampleOffsets returns the demo offsets in chronological order.
func SampleOffsets() []SampleOffset {
	return []SampleOffset{
		{Date: day(2023, time.January, 15), Amount: decimal.RequireFromString("25.4"), ProjectName: "Amazon Rainforest Conservation", Status: models.StatusVerified},
		{Date: day(2023, time.February, 28), Amount: decimal.RequireFromString("18.2"), ProjectName: "Wind Farm Development", Status: models.StatusVerified},
		{Date: day(2023, time.April, 10), Amount: decimal.RequireFromString("32.6"), ProjectName: "Mangrove Restoration", Status: models.StatusVerified},
		{Date: day(2023, time.May, 22), Amount: decimal.RequireFromString("15.8"), ProjectName: "Solar Panel Installation", Status: models.StatusPending},
		{Date: day(2023, time.June, 30), Amount: decimal.RequireFromString("27.3"), ProjectName: "Ocean Cleanup Initiative", Status: models.StatusPending},
	}
}
