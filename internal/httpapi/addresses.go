package httpapi

import (
	"net/http"

	"bookstall-be/internal/address"
	"bookstall-be/internal/review"
)

func (h *handler) listAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

func (h *handler) createAddress(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Address string `json:"address"`
		PhoneNo string `json:"phone_no"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := h.addresses.Create(r.Context(), address.CreateAddressInput{
		Address: payload.Address,
		PhoneNo: payload.PhoneNo,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (h *handler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.addresses.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) createReview(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		BookID  string  `json:"book_id"`
		Rating  int     `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rev, err := h.reviews.Create(r.Context(), review.CreateReviewInput{
		BookID:  payload.BookID,
		Rating:  payload.Rating,
		Comment: payload.Comment,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rev)
}

func (h *handler) bookReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByBook(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
