package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouterRegistersRoutes(t *testing.T) {
	r := NewRouter()

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/health",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/exercises",
		"GET /api/exercises/:exercise_id/attachments",
		"POST /api/exercises/:exercise_id/attachments",
		"GET /api/exercises/:exercise_id/export",
		"GET /api/attachments/:attachment_id/download",
		"DELETE /api/attachments/:attachment_id",
		"GET /api/workouts/:workout_id/export",
		"GET /api/reports/volume",
		"GET /api/reports/records",
	}

	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}
