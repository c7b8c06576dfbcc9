package models

// Book is a catalog entry. Only Title, Author and Genres take part in lookups.
type Book struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genres      []string `json:"genres"`
	Year        int      `json:"year,omitempty"`
	Pages       int      `json:"pages,omitempty"`
	Description string   `json:"description,omitempty"`
}

type BookSearchQuery struct {
	Query string `json:"q" validate:"max=200"`
	Limit int    `json:"limit" validate:"min=1,max=50"`
}

type BookListResponse struct {
	Books []Book `json:"books"`
	Count int    `json:"count"`
}
