package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/thehaffk/WorkoutTracker/internal/guard"
	"github.com/thehaffk/WorkoutTracker/internal/middleware"
	"github.com/thehaffk/WorkoutTracker/internal/utils"
)

// currentActor resolves the authenticated user and its guard actor in one go.
func currentActor(ctx *gin.Context) (guard.Actor, middleware.AuthenticatedUser, error) {
	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		return guard.Actor{}, middleware.AuthenticatedUser{}, err
	}

	return guard.Actor{ID: user.ID, Role: user.Role}, user, nil
}
