package routes

import (
	"github.com/gin-gonic/gin"

	"statelab/internal/controller"
	"statelab/internal/middleware"
)

// Router builds the demo HTTP surface over the todo store.
func Router(ctrl *controller.Controller) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	router.GET("/health", ctrl.Health)
	router.GET("/uptime", ctrl.Uptime)

	router.GET("/todos", ctrl.ListTodos)
	router.GET("/todos/stats", ctrl.GetStats)
	router.POST("/todos", ctrl.CreateTodo)
	router.PUT("/todos/:id", ctrl.UpdateTodo)
	router.DELETE("/todos/:id", ctrl.DeleteTodo)
	router.POST("/todos/clear-completed", ctrl.ClearCompleted)

	return router
}
