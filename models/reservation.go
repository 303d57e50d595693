package models

// Reservation is one reserved landing slot on the runway.
type Reservation struct {
	Minute int    `json:"minute" bson:"minute"` // minutes from midnight (e.g., 540 for 9:00)
	Time   string `json:"time" bson:"time"`     // "H:MM"
}

// RequestReservationInput is the payload for reserving a landing time.
type RequestReservationInput struct {
	Time string `json:"time" binding:"required"` // "HH:MM", 24-hour
}

// ReservationList is the ascending view of every pending reservation.
type ReservationList struct {
	K            int           `json:"k"`
	Count        int           `json:"count"`
	Reservations []Reservation `json:"reservations"`
}

// RankResponse reports how many reservations come before a reserved time.
type RankResponse struct {
	Time string `json:"time"`
	Rank int    `json:"rank"`
}
