package data

import (
	"testing"
	"time"

	"github.com/steven0413/BiblioteEmail/internal/validator"
)

func TestValidateReservation(t *testing.T) {
	now := time.Now()
	valid := Reservation{
		BookID:     1,
		UserEmail:  "lector@example.com",
		ReservedAt: now,
		ExpiresAt:  now.Add(14 * 24 * time.Hour),
		Active:     true,
	}

	tests := []struct {
		name    string
		mutate  func(r Reservation) Reservation
		invalid string
	}{
		{
			name:   "valid reservation",
			mutate: func(r Reservation) Reservation { return r },
		},
		{
			name:    "zero book id",
			mutate:  func(r Reservation) Reservation { r.BookID = 0; return r },
			invalid: "book_id",
		},
		{
			name:    "malformed email",
			mutate:  func(r Reservation) Reservation { r.UserEmail = "not-an-email"; return r },
			invalid: "user_email",
		},
		{
			name:    "uppercase email",
			mutate:  func(r Reservation) Reservation { r.UserEmail = "Lector@example.com"; return r },
			invalid: "user_email",
		},
		{
			name:    "expiry before reservation",
			mutate:  func(r Reservation) Reservation { r.ExpiresAt = r.ReservedAt.Add(-time.Hour); return r },
			invalid: "expires_at",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			reservation := tt.mutate(valid)
			ValidateReservation(v, &reservation)
			if tt.invalid == "" {
				if !v.Valid() {
					t.Errorf("expected a valid reservation; got errors %v", v.Errors)
				}
				return
			}
			if _, ok := v.Errors[tt.invalid]; !ok {
				t.Errorf("expected an error on %q; got %v", tt.invalid, v.Errors)
			}
		})
	}
}
