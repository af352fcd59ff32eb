package handlers

import (
	"homesweethome/middleware"
	"homesweethome/utils"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"
)

// GraphQLHandler serves the schema over POST. The raw request and response
// writer travel in the context so resolvers can read and set the session
// cookie.
type GraphQLHandler struct {
	relay  *relay.Handler
	logger *zap.Logger
}

func NewGraphQLHandler(schema *graphql.Schema, logger *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{relay: &relay.Handler{Schema: schema}, logger: logger}
}

func (h *GraphQLHandler) Serve(c *gin.Context) {
	logger := middleware.LoggerFrom(c, h.logger)
	logger.Debug("GraphQL request", zap.String("ip", c.ClientIP()))

	ctx := utils.WithHTTP(c.Request.Context(), c.Writer, c.Request)
	h.relay.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
}
