package resolvers

import (
	"context"
	"net/http"

	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/services/booking"
	"homesweethome/services/listing"
	"homesweethome/services/user"
	"homesweethome/utils"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

// maxQueryDepth guards against deeply nested listing/host/bookings queries.
const maxQueryDepth = 8

// Resolver is the GraphQL root. It holds the services every field needs.
type Resolver struct {
	Sessions       auth.SessionService
	UserService    user.UserService
	ListingService listing.ListingService
	BookingService booking.BookingService
	Logger         *zap.Logger
}

// NewSchema parses the schema and binds it to r.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, r, graphql.MaxDepth(maxQueryDepth))
}

// credentials reads the session inputs of the request that carried ctx.
func credentials(ctx context.Context) auth.Credentials {
	hc := utils.HTTPFromContext(ctx)
	if hc == nil {
		return auth.Credentials{}
	}
	return auth.CredentialsFromRequest(hc.Request)
}

func responseWriter(ctx context.Context) (http.ResponseWriter, error) {
	hc := utils.HTTPFromContext(ctx)
	if hc == nil || hc.Writer == nil {
		return nil, utils.NewAppError(utils.KindInternal, "no HTTP response to attach the session to", nil)
	}
	return hc.Writer, nil
}

// viewer resolves the caller, or nil for an anonymous one.
func (r *Resolver) viewer(ctx context.Context) (*models.User, error) {
	return r.Sessions.Authorize(ctx, credentials(ctx))
}

// pageArgs is shared by every paginated field.
type pageArgs struct {
	Limit int32
	Page  int32
}
