package booking

import "math"

// PriceCalculator computes the total price of a booking window at a guide's
// hourly rate. Prices are integer cents.
type PriceCalculator interface {
	Compute(window TimeWindow, hourlyRateCents int64) int64
}

// HourlyPriceCalculator is the default duration-times-rate pricing.
type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

// Compute returns duration in hours multiplied by the hourly rate,
// rounded to the nearest cent.
func (HourlyPriceCalculator) Compute(window TimeWindow, hourlyRateCents int64) int64 {
	return int64(math.Round(window.DurationHours() * float64(hourlyRateCents)))
}
