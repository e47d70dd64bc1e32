package handlers

import (
	userRepoPkg "campfinder/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration. UserRepo is exposed so routes can build the auth guard.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Auth      *AuthHandler
	Bootcamps *BootcampHandler
	Courses   *CourseHandler
	Reviews   *ReviewHandler
	Users     *UserHandler
}
