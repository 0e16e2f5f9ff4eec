// model/book.go
package model

import "time"

type BookLocation string

const (
	LocationStore   BookLocation = "Store"
	LocationLibrary BookLocation = "Library"
)

type Book struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Genre       string       `json:"genre"`
	Language    string       `json:"language"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	Cover       string       `json:"cover,omitempty"`
	Location    BookLocation `json:"location"`
	Available   bool         `json:"available"`
	UploadedBy  *string      `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}
