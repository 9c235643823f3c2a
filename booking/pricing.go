package booking

import "github.com/serendibgo/rental-api/models"

// Quote prices a prospective rental against a vehicle's tariff. A rental type
// the tariff has no rate for prices at zero rather than failing. The driver
// fee is charged per unit of duration; insurance is a flat fee.
func Quote(tariff models.Tariff, rentalType models.RentalType, duration int, driverRequired, insurance bool) models.CostQuote {
	rate := tariff.Rate(rentalType)
	base := rate * float64(duration)

	breakdown := models.CostBreakdown{
		RentalType: rentalType,
		UnitRate:   rate,
		Duration:   duration,
		BaseAmount: base,
	}

	total := base
	if driverRequired && tariff.DriverFee > 0 {
		breakdown.DriverCharge = tariff.DriverFee * float64(duration)
		total += breakdown.DriverCharge
	}
	if insurance && tariff.InsuranceFee > 0 {
		breakdown.InsuranceCharge = tariff.InsuranceFee
		total += breakdown.InsuranceCharge
	}

	return models.CostQuote{
		BaseAmount:  base,
		TotalAmount: total,
		Currency:    tariff.Currency,
		Breakdown:   breakdown,
	}
}

// rentalPricing is the snapshot stored on a rental
func rentalPricing(q models.CostQuote) models.RentalPricing {
	return models.RentalPricing{
		BasePrice:   q.Breakdown.UnitRate,
		Subtotal:    q.Breakdown.UnitRate * float64(q.Breakdown.Duration),
		TotalAmount: q.TotalAmount,
		Currency:    q.Currency,
	}
}
