package handlers

import (
	"errors"
	"net/http"

	"campfinder/models"
	"campfinder/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondOK writes the success envelope around a single resource.
func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondList writes the success envelope around a collection, with the
// result count and pagination metadata when present.
func respondList(c *gin.Context, count int, pagination *models.Pagination, data any) {
	body := gin.H{"success": true, "count": count, "data": data}
	if pagination != nil {
		body["pagination"] = pagination
	}
	c.JSON(http.StatusOK, body)
}

// respondError maps a service error onto the error envelope, falling back to
// a 500 for anything that is not an APIError.
func respondError(c *gin.Context, err error) {
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"success": false, "error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}

// parseObjectID reads a path parameter as an ObjectID; a malformed value is
// reported as a not-found for the named resource, echoing the attempted id.
func parseObjectID(c *gin.Context, param, resource string) (primitive.ObjectID, bool) {
	raw := c.Param(param)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   resource + " not found with id of " + raw,
		})
		return primitive.NilObjectID, false
	}
	return id, true
}
