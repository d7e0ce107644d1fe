package services

import "aeropark/internal/domain/models"

// Daily rates and surcharges in DZD. Prices are always recomputed here;
// a client-supplied total is never trusted.
const (
	dailyRateExterne = 500
	dailyRateInterne = 600
	oversizedPerDay  = 100
	longStayPerDay   = 100
	fuelServiceFee   = 1000
)

var cleaningFees = map[string]int64{
	models.CleaningNone:     0,
	models.CleaningExterior: 800,
	models.CleaningInterior: 600,
	models.CleaningFull:     1200,
}

// PriceBreakdown itemizes a reservation's cost the way the bon de
// commande prints it. ParkingTotal + OversizeTotal - LongStayDiscount +
// CleaningFee + FuelFee == Total.
type PriceBreakdown struct {
	Days             int
	DailyRate        int64 // base rate before adjustments
	ParkingTotal     int64
	OversizeTotal    int64
	LongStayDiscount int64
	CleaningFee      int64
	FuelFee          int64
	Total            int64
}

// ComputeBreakdown prices a stay. Base daily rate is 500 for external
// parking, 600 for internal; +100/day for oversized vehicles; -100/day
// when the stay is strictly longer than five days. Cleaning and fuel are
// flat surcharges.
func ComputeBreakdown(days int, parkingType string, oversized bool, cleaningType string, withFuel bool) PriceBreakdown {
	if days < 1 {
		days = 1
	}

	b := PriceBreakdown{Days: days, DailyRate: dailyRateExterne}
	if parkingType == models.ParkingInterne {
		b.DailyRate = dailyRateInterne
	}
	b.ParkingTotal = b.DailyRate * int64(days)
	if oversized {
		b.OversizeTotal = oversizedPerDay * int64(days)
	}
	if days > 5 {
		b.LongStayDiscount = longStayPerDay * int64(days)
	}
	b.CleaningFee = cleaningFees[cleaningType]
	if withFuel {
		b.FuelFee = fuelServiceFee
	}

	b.Total = b.ParkingTotal + b.OversizeTotal - b.LongStayDiscount + b.CleaningFee + b.FuelFee
	return b
}

// ComputePrice returns only the total for the given stay.
func ComputePrice(days int, parkingType string, oversized bool, cleaningType string, withFuel bool) int64 {
	return ComputeBreakdown(days, parkingType, oversized, cleaningType, withFuel).Total
}
