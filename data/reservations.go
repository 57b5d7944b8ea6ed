package data

import (
	"strings"
	"time"

	"github.com/steven0413/BiblioteEmail/internal/validator"
)

// Reservation defines a book reservation model. While a reservation is
// active the referenced book must not be available.
type Reservation struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	UserEmail  string     `json:"user_email"`
	ReservedAt time.Time  `json:"reserved_at"`
	RenewedAt  *time.Time `json:"renewed_at,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Active     bool       `json:"active"`
}

func ValidateReservation(v *validator.Validator, reservation *Reservation) {
	v.Check(reservation.BookID > 0, "book_id", "must be a positive integer")
	v.Check(reservation.UserEmail != "", "user_email", "must be provided")
	v.Check(validator.Matches(reservation.UserEmail, validator.EmailRX), "user_email", "must be a valid email address")
	v.Check(reservation.UserEmail == strings.ToLower(reservation.UserEmail), "user_email", "must be lowercase")
	if !reservation.ReservedAt.IsZero() {
		v.Check(reservation.ExpiresAt.After(reservation.ReservedAt), "expires_at", "must be after the reservation time")
	}
}
