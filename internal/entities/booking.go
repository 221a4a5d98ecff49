package entities

import "time"

// BookingRequest is the guest's input, immutable once parsed.
// CheckOut must be strictly after CheckIn.
type BookingRequest struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Name     string
	Email    string
	Message  string
}

func (r *BookingRequest) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / (24 * time.Hour))
}

type NightRate struct {
	Date    time.Time
	Rate    int
	Premium bool
}

// Quote is the server-side recomputation of the stay price.
// Never mutated after PriceStay returns it.
type Quote struct {
	Nights     int
	NightRates []NightRate
	BaseTotal  int
	ExtraGuest int
	Total      int
}
