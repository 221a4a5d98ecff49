package service

import (
	"time"

	"terra/internal/entities"
	appErrors "terra/internal/errors"
)

// RateTable holds the nightly pricing policy in whole yen.
type RateTable struct {
	Standard      int
	Premium       int
	ExtraGuest    int
	BaseOccupancy int
}

// PriceStay recomputes the stay price server-side. Pure and deterministic:
// one entry per night in [checkIn, checkOut), Friday/Saturday/Sunday nights
// at the premium rate, plus a per-night surcharge for each guest above the
// base occupancy.
func PriceStay(checkIn, checkOut time.Time, guests int, rates RateTable) (*entities.Quote, error) {
	nights := int(checkOut.Sub(checkIn) / (24 * time.Hour))
	if nights < 1 {
		return nil, appErrors.ErrInvalidStay
	}

	quote := &entities.Quote{Nights: nights}
	for i := 0; i < nights; i++ {
		day := checkIn.AddDate(0, 0, i)
		premium := isPremiumNight(day.Weekday())
		rate := rates.Standard
		if premium {
			rate = rates.Premium
		}
		quote.NightRates = append(quote.NightRates, entities.NightRate{Date: day, Rate: rate, Premium: premium})
		quote.BaseTotal += rate
	}

	if guests > rates.BaseOccupancy {
		quote.ExtraGuest = (guests - rates.BaseOccupancy) * rates.ExtraGuest * nights
	}
	quote.Total = quote.BaseTotal + quote.ExtraGuest
	return quote, nil
}

// 休前日 pricing: nights starting Friday, Saturday or Sunday bill premium.
func isPremiumNight(day time.Weekday) bool {
	return day == time.Friday || day == time.Saturday || day == time.Sunday
}
