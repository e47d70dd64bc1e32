package handlers

import (
	"net/http"

	"campfinder/database/query"
	"campfinder/middleware"
	reviewService "campfinder/services/review"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves the review resource, both top-level and nested under
// a bootcamp.
type ReviewHandler struct {
	Reviews reviewService.ReviewService
}

// ListReviewsHandler handles GET /api/v1/reviews.
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query())
	reviews, pagination, err := h.Reviews.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(reviews), &pagination, reviews)
}

// ListBootcampReviewsHandler handles GET /api/v1/bootcamps/:id/reviews.
func (h *ReviewHandler) ListBootcampReviewsHandler(c *gin.Context) {
	bootcampID, ok := parseObjectID(c, "id", "Bootcamp")
	if !ok {
		return
	}
	reviews, err := h.Reviews.ListByBootcamp(c.Request.Context(), bootcampID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(reviews), nil, reviews)
}

// GetReviewHandler handles GET /api/v1/reviews/:id.
func (h *ReviewHandler) GetReviewHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Review")
	if !ok {
		return
	}
	review, err := h.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, review)
}

// CreateReviewHandler handles POST /api/v1/bootcamps/:id/reviews.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	bootcampID, ok := parseObjectID(c, "id", "Bootcamp")
	if !ok {
		return
	}

	var input reviewService.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	review, err := h.Reviews.Create(c.Request.Context(), middleware.CurrentUser(c), bootcampID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, review)
}

// UpdateReviewHandler handles PUT /api/v1/reviews/:id.
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Review")
	if !ok {
		return
	}

	var input reviewService.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	review, err := h.Reviews.Update(c.Request.Context(), middleware.CurrentUser(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, review)
}

// DeleteReviewHandler handles DELETE /api/v1/reviews/:id.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Review")
	if !ok {
		return
	}
	if err := h.Reviews.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}
