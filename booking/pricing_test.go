package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serendibgo/rental-api/models"
)

func TestQuoteDailyWithDriver(t *testing.T) {
	tariff := models.Tariff{Daily: 15000, DriverFee: 2000, Currency: "LKR"}

	q := Quote(tariff, models.RentalTypeDaily, 3, true, false)

	assert.Equal(t, 45000.0, q.BaseAmount)
	assert.Equal(t, 51000.0, q.TotalAmount)
	assert.Equal(t, "LKR", q.Currency)
	assert.Equal(t, 6000.0, q.Breakdown.DriverCharge)
	assert.Zero(t, q.Breakdown.InsuranceCharge)
}

func TestQuoteMissingRateIsZero(t *testing.T) {
	tariff := models.Tariff{Daily: 15000, Currency: "LKR"}

	q := Quote(tariff, models.RentalTypeHourly, 5, false, false)

	assert.Zero(t, q.BaseAmount)
	assert.Zero(t, q.TotalAmount)
}

func TestQuoteIgnoresAddOnsWithoutFees(t *testing.T) {
	tariff := models.Tariff{Weekly: 80000, Currency: "LKR"}

	q := Quote(tariff, models.RentalTypeWeekly, 2, true, true)

	assert.Equal(t, 160000.0, q.TotalAmount)
}

func TestQuoteTotalNonDecreasingInDuration(t *testing.T) {
	tariff := models.Tariff{Hourly: 1200, Daily: 9000, Weekly: 55000, Monthly: 200000, DriverFee: 1500, InsuranceFee: 3000}

	for _, rt := range models.ValidRentalTypes() {
		for _, driver := range []bool{false, true} {
			for _, insurance := range []bool{false, true} {
				prev := Quote(tariff, rt, 1, driver, insurance).TotalAmount
				for d := 2; d <= 30; d++ {
					cur := Quote(tariff, rt, d, driver, insurance).TotalAmount
					assert.GreaterOrEqual(t, cur, prev, "type=%s duration=%d", rt, d)
					prev = cur
				}
			}
		}
	}
}

func TestQuoteInsuranceIsFlat(t *testing.T) {
	tariff := models.Tariff{Daily: 9000, DriverFee: 1500, InsuranceFee: 3000}

	for d := 1; d <= 14; d++ {
		without := Quote(tariff, models.RentalTypeDaily, d, true, false)
		with := Quote(tariff, models.RentalTypeDaily, d, true, true)
		assert.Equal(t, 3000.0, with.TotalAmount-without.TotalAmount, "duration=%d", d)
	}
}

func TestRentalPricingSnapshot(t *testing.T) {
	tariff := models.Tariff{Daily: 15000, DriverFee: 2000, Currency: "LKR"}

	p := rentalPricing(Quote(tariff, models.RentalTypeDaily, 3, true, false))

	assert.Equal(t, models.RentalPricing{BasePrice: 15000, Subtotal: 45000, TotalAmount: 51000, Currency: "LKR"}, p)
}
