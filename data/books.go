package data

import (
	"strings"
	"time"

	"github.com/steven0413/BiblioteEmail/internal/validator"
)

// Book defines a book model. Records are owned by the storage layer:
// ID and CreatedAt are assigned on insert.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Isbn      string    `json:"isbn,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Available bool      `json:"available"`
}

// NormalizeIsbn strips hyphens and spaces from an ISBN so that only the
// digit count has to be validated.
func NormalizeIsbn(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(isbn, " ", "")
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(strings.TrimSpace(book.Title) != "", "title", "must be provided")
	v.Check(len(book.Title) <= 500, "title", "must not be more than 500 bytes long")
	v.Check(strings.TrimSpace(book.Author) != "", "author", "must be provided")
	v.Check(len(book.Author) <= 500, "author", "must not be more than 500 bytes long")
	if book.Isbn != "" {
		isbn := NormalizeIsbn(book.Isbn)
		v.Check(len(isbn) == 10 || len(isbn) == 13, "isbn", "must contain 10 or 13 digits")
		for _, r := range isbn {
			if r < '0' || r > '9' {
				v.AddError("isbn", "must contain only digits, hyphens and spaces")
				break
			}
		}
	}
}
