package handlers

import (
	"net/http"

	"campfinder/database/query"
	"campfinder/middleware"
	courseService "campfinder/services/course"

	"github.com/gin-gonic/gin"
)

// CourseHandler serves the course resource, both top-level and nested under
// a bootcamp.
type CourseHandler struct {
	Courses courseService.CourseService
}

// ListCoursesHandler handles GET /api/v1/courses.
func (h *CourseHandler) ListCoursesHandler(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query())
	courses, pagination, err := h.Courses.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(courses), &pagination, courses)
}

// ListBootcampCoursesHandler handles GET /api/v1/bootcamps/:id/courses,
// returning the bootcamp's full course list without pagination.
func (h *CourseHandler) ListBootcampCoursesHandler(c *gin.Context) {
	bootcampID, ok := parseObjectID(c, "id", "Bootcamp")
	if !ok {
		return
	}
	courses, err := h.Courses.ListByBootcamp(c.Request.Context(), bootcampID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(courses), nil, courses)
}

// GetCourseHandler handles GET /api/v1/courses/:id.
func (h *CourseHandler) GetCourseHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Course")
	if !ok {
		return
	}
	course, err := h.Courses.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, course)
}

// CreateCourseHandler handles POST /api/v1/bootcamps/:id/courses.
func (h *CourseHandler) CreateCourseHandler(c *gin.Context) {
	bootcampID, ok := parseObjectID(c, "id", "Bootcamp")
	if !ok {
		return
	}

	var input courseService.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	course, err := h.Courses.Create(c.Request.Context(), middleware.CurrentUser(c), bootcampID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, course)
}

// UpdateCourseHandler handles PUT /api/v1/courses/:id.
func (h *CourseHandler) UpdateCourseHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Course")
	if !ok {
		return
	}

	var input courseService.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	course, err := h.Courses.Update(c.Request.Context(), middleware.CurrentUser(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, course)
}

// DeleteCourseHandler handles DELETE /api/v1/courses/:id.
func (h *CourseHandler) DeleteCourseHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "Course")
	if !ok {
		return
	}
	if err := h.Courses.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}
