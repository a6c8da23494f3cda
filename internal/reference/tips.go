package reference

type Tip struct {
	Title       string
	Description string
	// KgPerYear is the approximate yearly CO2 saving.
	KgPerYear int
}

func Tips() []Tip {
	return []Tip{
		{Title: "Switch to LED bulbs", Description: "Can reduce energy consumption by up to 80%", KgPerYear: 15},
		{Title: "Walk or bike short trips", Description: "Replace car trips under 2km with walking or cycling", KgPerYear: 50},
		{Title: "Recycle properly", Description: "Sort materials correctly to maximize recycling efficiency", KgPerYear: 25},
		{Title: "Unplug devices", Description: "Electronics consume power even when turned off", KgPerYear: 10},
	}
}
