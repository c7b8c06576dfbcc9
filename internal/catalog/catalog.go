// Package catalog provides read-only lookups over a static book list.
package catalog

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"bookbot-backend/internal/logging"
	"bookbot-backend/internal/models"
)

// DefaultLimit is used by callers that do not ask for a specific limit.
const DefaultLimit = 3

// moodGenres maps a mood to the genres that suit it. Unlike the persona mood
// table there is no default entry: an unknown mood matches nothing.
var moodGenres = map[string][]string{
	"adventurous": {"Adventure", "Action", "Thriller", "Fantasy"},
	"romantic":    {"Romance", "Contemporary", "Historical Fiction"},
	"mysterious":  {"Mystery", "Thriller", "Horror", "Crime"},
	"thoughtful":  {"Literary Fiction", "Philosophy", "Biography", "History"},
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	books []models.Book
}

// New wraps an in-memory book list. The slice is copied.
func New(books []models.Book) *Catalog {
	return &Catalog{books: append([]models.Book(nil), books...)}
}

// Load reads a JSON array of books from path. A missing or malformed file
// yields an empty catalog; the problem is logged, never returned.
func Load(path string) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Warn().Str("path", path).Msg("book catalog not found, starting with an empty catalog")
		} else {
			logging.Warn().Err(err).Str("path", path).Msg("failed to read book catalog, starting with an empty catalog")
		}
		return New(nil)
	}

	var books []models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("malformed book catalog, starting with an empty catalog")
		return New(nil)
	}

	logging.Info().Str("path", path).Int("books", len(books)).Msg("book catalog loaded")
	return New(books)
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Search returns up to limit books whose title, author or any genre contains
// query, case-insensitively, in catalog order.
func (c *Catalog) Search(query string, limit int) []models.Book {
	if query == "" || len(c.books) == 0 || limit <= 0 {
		return []models.Book{}
	}

	q := strings.ToLower(query)
	results := make([]models.Book, 0, min(limit, len(c.books)))
	for _, book := range c.books {
		if matchesQuery(book, q) {
			results = append(results, book)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

func matchesQuery(book models.Book, q string) bool {
	if strings.Contains(strings.ToLower(book.Title), q) || strings.Contains(strings.ToLower(book.Author), q) {
		return true
	}
	for _, genre := range book.Genres {
		if strings.Contains(strings.ToLower(genre), q) {
			return true
		}
	}
	return false
}

// GetByTitle returns the first book whose title equals title, ignoring case.
func (c *Catalog) GetByTitle(title string) (models.Book, bool) {
	for _, book := range c.books {
		if strings.EqualFold(book.Title, title) {
			return book, true
		}
	}
	return models.Book{}, false
}

// GetByMood returns up to limit books having at least one genre mapped from
// mood. Genre comparison is exact.
func (c *Catalog) GetByMood(mood string, limit int) []models.Book {
	genres := moodGenres[strings.ToLower(mood)]
	if len(genres) == 0 || limit <= 0 {
		return []models.Book{}
	}

	results := make([]models.Book, 0, min(limit, len(c.books)))
	for _, book := range c.books {
		if sharesGenre(book.Genres, genres) {
			results = append(results, book)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

func sharesGenre(bookGenres, wanted []string) bool {
	for _, g := range bookGenres {
		for _, w := range wanted {
			if g == w {
				return true
			}
		}
	}
	return false
}

// moods lists the moods GetByMood understands.
func moods() []string {
	return []string{"adventurous", "romantic", "mysterious", "thoughtful"}
}
