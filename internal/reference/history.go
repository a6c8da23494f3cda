package reference

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultHistoryHours covers one week of hourly samples.
const DefaultHistoryHours = 168

// History generates hourly synthetic readings ending at now, oldest first.
// Daytime hours (08..18) jitter more than night hours.
func History(hours int, now time.Time, rnd *rand.Rand) []Reading {
	if hours <= 0 {
		return []Reading{}
	}
	base := 400 + rnd.IntN(30)
	out := make([]Reading, hours)
	for i := 0; i < hours; i++ {
		ts := now.Add(-time.Duration(i) * time.Hour)
		variation := 5
		if h := ts.Hour(); h >= 8 && h <= 18 {
			variation = 15
		}
		out[hours-1-i] = Reading{
			CO2:       base + rnd.IntN(variation) - variation/2,
			Timestamp: ts,
		}
	}
	return out
}

// History generates readings for a sensor known to the catalog.
func (c *Catalog) History(sensorID string, hours int, now time.Time, rnd *rand.Rand) ([]Reading, error) {
	if _, err := c.Find(sensorID); err != nil {
		return nil, fmt.Errorf("history for %q: %w", sensorID, err)
	}
	return History(hours, now, rnd), nil
}
