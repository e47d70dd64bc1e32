package routes

import (
	"net/http"
	"time"

	"campfinder/handlers"
	"campfinder/middleware"
	"campfinder/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and credential endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.GET("/logout", hb.Auth.LogoutHandler)
		api.POST("/forgotpassword", hb.Auth.ForgotPasswordHandler)
		api.PUT("/resetpassword/:resettoken", hb.Auth.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.Protect(hb.UserRepo))
		api.GET("/me", hb.Auth.MeHandler)
		api.PUT("/updatedetails", hb.Auth.UpdateDetailsHandler)
		api.PUT("/updatepassword", hb.Auth.UpdatePasswordHandler)
	}
}

// RegisterBootcampRoutes registers bootcamp endpoints with the nested
// course and review collections.
func RegisterBootcampRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	publish := []gin.HandlerFunc{
		middleware.Protect(hb.UserRepo),
		middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
	}

	api := r.Group("/api/v1/bootcamps")
	{
		api.GET("", hb.Bootcamps.ListBootcampsHandler)
		api.GET("/:id", hb.Bootcamps.GetBootcampHandler)
		api.GET("/radius/:zipcode/:distance/:unit", hb.Bootcamps.RadiusHandler)
		api.GET("/:id/courses", hb.Courses.ListBootcampCoursesHandler)
		api.GET("/:id/reviews", hb.Reviews.ListBootcampReviewsHandler)

		api.POST("", append(publish, hb.Bootcamps.CreateBootcampHandler)...)
		api.PUT("/:id", append(publish, hb.Bootcamps.UpdateBootcampHandler)...)
		api.DELETE("/:id", append(publish, hb.Bootcamps.DeleteBootcampHandler)...)
		api.PUT("/:id/photo", append(publish, hb.Bootcamps.UploadPhotoHandler)...)
		api.POST("/:id/courses", append(publish, hb.Courses.CreateCourseHandler)...)
		api.POST("/:id/reviews",
			middleware.Protect(hb.UserRepo),
			middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
			hb.Reviews.CreateReviewHandler)
	}
}

// RegisterCourseRoutes registers the top-level course endpoints.
func RegisterCourseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	publish := []gin.HandlerFunc{
		middleware.Protect(hb.UserRepo),
		middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
	}

	api := r.Group("/api/v1/courses")
	{
		api.GET("", hb.Courses.ListCoursesHandler)
		api.GET("/:id", hb.Courses.GetCourseHandler)
		api.PUT("/:id", append(publish, hb.Courses.UpdateCourseHandler)...)
		api.DELETE("/:id", append(publish, hb.Courses.DeleteCourseHandler)...)
	}
}

// RegisterReviewRoutes registers the top-level review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	review := []gin.HandlerFunc{
		middleware.Protect(hb.UserRepo),
		middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
	}

	api := r.Group("/api/v1/reviews")
	{
		api.GET("", hb.Reviews.ListReviewsHandler)
		api.GET("/:id", hb.Reviews.GetReviewHandler)
		api.PUT("/:id", append(review, hb.Reviews.UpdateReviewHandler)...)
		api.DELETE("/:id", append(review, hb.Reviews.DeleteReviewHandler)...)
	}
}

// RegisterUserRoutes registers the admin-only user management endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/users")
	{
		api.Use(middleware.Protect(hb.UserRepo))
		api.Use(middleware.RequireRoles(models.RoleAdmin))
		api.GET("", hb.Users.ListUsersHandler)
		api.GET("/:id", hb.Users.GetUserHandler)
		api.POST("", hb.Users.CreateUserHandler)
		api.PUT("/:id", hb.Users.UpdateUserHandler)
		api.DELETE("/:id", hb.Users.DeleteUserHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterBootcampRoutes(r, hb)
	RegisterCourseRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterUserRoutes(r, hb)
}
