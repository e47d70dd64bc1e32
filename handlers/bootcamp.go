package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"campfinder/config"
	"campfinder/database/query"
	"campfinder/middleware"
	bootcampService "campfinder/services/bootcamp"

	"github.com/gin-gonic/gin"
)

// BootcampHandler serves the bootcamp resource.
type BootcampHandler struct {
	Bootcamps bootcampService.BootcampService
}

// ListBootcampsHandler handles GET /api/v1/bootcamps with filtering,
// selection, sorting and pagination taken from the query string.
func (h *BootcampHandler) ListBootcampsHandler(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query())
	bootcamps, pagination, err := h.Bootcamps.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(bootcamps), &pagination, bootcamps)
}

// GetBootcampHandler handles GET /api/v1/bootcamps/:id.
func (h *BootcampHandler) GetBootcampHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Bootcamp")
	if !ok {
		return
	}
	b, err := h.Bootcamps.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

// CreateBootcampHandler handles POST /api/v1/bootcamps.
func (h *BootcampHandler) CreateBootcampHandler(c *gin.Context) {
	var input bootcampService.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	b, err := h.Bootcamps.Create(c.Request.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, b)
}

// UpdateBootcampHandler handles PUT /api/v1/bootcamps/:id.
func (h *BootcampHandler) UpdateBootcampHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Bootcamp")
	if !ok {
		return
	}

	var input bootcampService.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	b, err := h.Bootcamps.Update(c.Request.Context(), middleware.CurrentUser(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

// DeleteBootcampHandler handles DELETE /api/v1/bootcamps/:id.
func (h *BootcampHandler) DeleteBootcampHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Bootcamp")
	if !ok {
		return
	}
	if err := h.Bootcamps.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}

// RadiusHandler handles GET /api/v1/bootcamps/radius/:zipcode/:distance/:unit.
func (h *BootcampHandler) RadiusHandler(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		respondBadRequest(c, "Distance must be a number")
		return
	}

	bootcamps, svcErr := h.Bootcamps.WithinRadius(c.Request.Context(), c.Param("zipcode"), distance, c.Param("unit"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	respondList(c, len(bootcamps), nil, bootcamps)
}

// UploadPhotoHandler handles PUT /api/v1/bootcamps/:id/photo. The upload is
// a multipart form with the image under the "file" field.
func (h *BootcampHandler) UploadPhotoHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Bootcamp")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "Please upload a file")
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		respondBadRequest(c, "Please upload an image file")
		return
	}
	if header.Size > config.AppConfig.MaxFileUpload {
		respondBadRequest(c, fmt.Sprintf("Please upload an image less than %d bytes", config.AppConfig.MaxFileUpload))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondBadRequest(c, "Problem with file upload")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename, svcErr := h.Bootcamps.UploadPhoto(c.Request.Context(), middleware.CurrentUser(c), id, file, ext)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	respondOK(c, http.StatusOK, filename)
}
