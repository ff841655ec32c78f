package httpapi

import (
	"net/http"
	"strconv"

	"bookstall-be/internal/book"
)

func listOptionsFromQuery(r *http.Request) book.ListOptions {
	opts := book.ListOptions{
		Search: r.URL.Query().Get("search"),
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil {
		opts.Limit = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil {
		opts.Page = int32(v)
	}
	return opts
}

func (h *handler) browseBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.Browse(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *handler) getBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.books.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type bookPayload struct {
	Title       string  `json:"title"`
	Author      *string `json:"author"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"image_url"`
	Description *string `json:"description"`
}

func (h *handler) addBook(w http.ResponseWriter, r *http.Request) {
	var payload bookPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := h.books.Add(r.Context(), book.NewBookInput{
		Title:       payload.Title,
		Author:      payload.Author,
		Price:       payload.Price,
		Stock:       payload.Stock,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

func (h *handler) editBook(w http.ResponseWriter, r *http.Request) {
	var payload bookPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := h.books.Edit(r.Context(), book.UpdateBookInput{
		BookID:      r.PathValue("id"),
		Title:       payload.Title,
		Author:      payload.Author,
		Price:       payload.Price,
		Stock:       payload.Stock,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *handler) removeBook(w http.ResponseWriter, r *http.Request) {
	if err := h.books.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) sellerBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListOwn(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}
