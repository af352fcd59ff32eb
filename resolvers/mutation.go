package resolvers

import (
	"context"

	"homesweethome/models"
	"homesweethome/services/booking"
	"homesweethome/services/listing"

	graphql "github.com/graph-gophers/graphql-go"
)

type codeInput struct {
	Code string
}

// Login signs in with a Google authorization code, or with the existing
// viewer cookie when no input is given.
func (r *Resolver) Login(ctx context.Context, args struct{ Input *codeInput }) (*ViewerResolver, error) {
	w, err := responseWriter(ctx)
	if err != nil {
		return nil, err
	}
	code := ""
	if args.Input != nil {
		code = args.Input.Code
	}
	v, err := r.Sessions.LogIn(ctx, w, credentials(ctx), code)
	if err != nil {
		return nil, err
	}
	return &ViewerResolver{viewer: v}, nil
}

func (r *Resolver) LoginAsGuest(ctx context.Context) (*ViewerResolver, error) {
	w, err := responseWriter(ctx)
	if err != nil {
		return nil, err
	}
	v, err := r.Sessions.LogInAsGuest(ctx, w)
	if err != nil {
		return nil, err
	}
	return &ViewerResolver{viewer: v}, nil
}

func (r *Resolver) Logout(ctx context.Context) (*ViewerResolver, error) {
	w, err := responseWriter(ctx)
	if err != nil {
		return nil, err
	}
	return &ViewerResolver{viewer: r.Sessions.LogOut(w)}, nil
}

func (r *Resolver) StripeConnect(ctx context.Context, args struct{ Input codeInput }) (*ViewerResolver, error) {
	v, err := r.UserService.ConnectWallet(ctx, credentials(ctx), args.Input.Code)
	if err != nil {
		return nil, err
	}
	return &ViewerResolver{viewer: v}, nil
}

func (r *Resolver) StripeDisconnect(ctx context.Context) (*ViewerResolver, error) {
	v, err := r.UserService.DisconnectWallet(ctx, credentials(ctx))
	if err != nil {
		return nil, err
	}
	return &ViewerResolver{viewer: v}, nil
}

type hostListingInput struct {
	Title       string
	Description string
	Image       string
	Type        string
	Address     string
	Price       int32
	NumOfGuests int32
}

func (r *Resolver) HostListing(ctx context.Context, args struct{ Input hostListingInput }) (*ListingResolver, error) {
	in := args.Input
	l, err := r.ListingService.HostListing(ctx, credentials(ctx), listing.HostListingInput{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Type:        models.ListingType(in.Type),
		Address:     in.Address,
		Price:       int64(in.Price),
		NumOfGuests: int(in.NumOfGuests),
	})
	if err != nil {
		return nil, err
	}
	return &ListingResolver{root: r, listing: l, authorized: true}, nil
}

func (r *Resolver) DeleteListing(ctx context.Context, args struct{ Input struct{ ID graphql.ID } }) (*ListingResolver, error) {
	l, err := r.ListingService.DeleteListing(ctx, credentials(ctx), string(args.Input.ID))
	if err != nil {
		return nil, err
	}
	return &ListingResolver{root: r, listing: l, authorized: true}, nil
}

type createBookingInput struct {
	ID       graphql.ID
	Source   string
	CheckIn  string
	CheckOut string
}

func (r *Resolver) CreateBooking(ctx context.Context, args struct{ Input createBookingInput }) (*BookingResolver, error) {
	b, err := r.BookingService.CreateBooking(ctx, credentials(ctx), booking.CreateBookingInput{
		ListingID: string(args.Input.ID),
		Source:    args.Input.Source,
		CheckIn:   args.Input.CheckIn,
		CheckOut:  args.Input.CheckOut,
	})
	if err != nil {
		return nil, err
	}
	return &BookingResolver{root: r, booking: b}, nil
}
