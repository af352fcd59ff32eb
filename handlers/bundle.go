package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers routes are built from.
type HandlerBundle struct {
	GraphQLHandler gin.HandlerFunc
	HealthHandler  gin.HandlerFunc
}
