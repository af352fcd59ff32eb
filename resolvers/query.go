package resolvers

import (
	"context"

	"homesweethome/services/listing"

	graphql "github.com/graph-gophers/graphql-go"
)

func (r *Resolver) AuthURL() string {
	return r.Sessions.AuthURL()
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	u, err := r.UserService.GetUser(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	viewer, err := r.viewer(ctx)
	if err != nil {
		return nil, err
	}
	authorized := viewer != nil && viewer.ID == u.ID
	return &UserResolver{root: r, user: u, authorized: authorized}, nil
}

func (r *Resolver) Listing(ctx context.Context, args struct{ ID graphql.ID }) (*ListingResolver, error) {
	l, err := r.ListingService.GetListing(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	viewer, err := r.viewer(ctx)
	if err != nil {
		return nil, err
	}
	authorized := viewer != nil && viewer.ID == l.Host
	return &ListingResolver{root: r, listing: l, authorized: authorized}, nil
}

type listingsArgs struct {
	Location *string
	Filter   *string
	Limit    int32
	Page     int32
}

func (r *Resolver) Listings(ctx context.Context, args listingsArgs) (*ListingsResolver, error) {
	in := listing.SearchInput{Limit: int64(args.Limit), Page: int64(args.Page)}
	if args.Location != nil {
		in.Location = *args.Location
	}
	if args.Filter != nil {
		in.Filter = listing.Filter(*args.Filter)
	}
	page, err := r.ListingService.ListListings(ctx, in)
	if err != nil {
		return nil, err
	}
	return &ListingsResolver{root: r, page: page}, nil
}
