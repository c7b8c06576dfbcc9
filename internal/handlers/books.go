package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bookbot-backend/internal/catalog"
	"bookbot-backend/internal/models"
	"bookbot-backend/internal/validation"
)

type bookCatalog interface {
	Search(query string, limit int) []models.Book
	GetByTitle(title string) (models.Book, bool)
	GetByMood(mood string, limit int) []models.Book
}

type BookHandler struct {
	books bookCatalog
}

func NewBookHandler(books bookCatalog) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, ok := parseBookQuery(w, r, r.URL.Query().Get("q"))
	if !ok {
		return
	}
	writeBooks(w, h.books.Search(q.Query, q.Limit))
}

func (h *BookHandler) ByTitle(w http.ResponseWriter, r *http.Request) {
	book, ok := h.books.GetByTitle(chi.URLParam(r, "title"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("Book not found"))
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) ByMood(w http.ResponseWriter, r *http.Request) {
	q, ok := parseBookQuery(w, r, chi.URLParam(r, "mood"))
	if !ok {
		return
	}
	writeBooks(w, h.books.GetByMood(q.Query, q.Limit))
}

func parseBookQuery(w http.ResponseWriter, r *http.Request, query string) (models.BookSearchQuery, bool) {
	q := models.BookSearchQuery{Query: query, Limit: catalog.DefaultLimit}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("limit must be a number"))
			return q, false
		}
		q.Limit = limit
	}

	if err := validation.ValidateStruct(&q); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(err.Error()))
		return q, false
	}
	return q, true
}

func writeBooks(w http.ResponseWriter, books []models.Book) {
	writeJSON(w, http.StatusOK, models.BookListResponse{Books: books, Count: len(books)})
}
