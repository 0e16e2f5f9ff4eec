package book

type BookReq struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Language    string  `json:"language"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Cover       string  `json:"cover"`
	Location    string  `json:"location" validate:"required,oneof=Store Library"`
	Available   *bool   `json:"available"`
}
