package resolvers

import (
	"context"
	"encoding/json"
	"math"

	"homesweethome/models"
	"homesweethome/utils"

	graphql "github.com/graph-gophers/graphql-go"
)

type ViewerResolver struct {
	viewer *models.Viewer
}

func (v *ViewerResolver) ID() *graphql.ID {
	if v.viewer.ID == "" {
		return nil
	}
	id := graphql.ID(v.viewer.ID)
	return &id
}

func (v *ViewerResolver) Token() *string { return optional(v.viewer.Token) }
func (v *ViewerResolver) Avatar() *string { return optional(v.viewer.Avatar) }

// HasWallet is only reported for a signed in viewer.
func (v *ViewerResolver) HasWallet() *bool {
	if v.viewer.ID == "" {
		return nil
	}
	has := v.viewer.WalletID != ""
	return &has
}

func (v *ViewerResolver) DidRequest() bool { return v.viewer.DidRequest }

// UserResolver exposes a user. Income and bookings are private to the user
// themselves.
type UserResolver struct {
	root       *Resolver
	user       *models.User
	authorized bool
}

func (u *UserResolver) ID() graphql.ID { return graphql.ID(u.user.ID) }
func (u *UserResolver) Name() string { return u.user.Name }
func (u *UserResolver) Avatar() string { return u.user.Avatar }
func (u *UserResolver) Contact() string { return u.user.Contact }
func (u *UserResolver) HasWallet() bool { return u.user.HasWallet() }

func (u *UserResolver) Income() *int32 {
	if !u.authorized {
		return nil
	}
	income := int32(math.MaxInt32)
	if u.user.Income < math.MaxInt32 {
		income = int32(u.user.Income)
	}
	return &income
}

func (u *UserResolver) Bookings(ctx context.Context, args pageArgs) (*BookingsResolver, error) {
	if !u.authorized {
		return nil, nil
	}
	page, err := u.root.UserService.UserBookings(ctx, u.user, int64(args.Limit), int64(args.Page))
	if err != nil {
		return nil, err
	}
	return &BookingsResolver{root: u.root, page: page}, nil
}

func (u *UserResolver) Listings(ctx context.Context, args pageArgs) (*ListingsResolver, error) {
	page, err := u.root.UserService.UserListings(ctx, u.user, int64(args.Limit), int64(args.Page))
	if err != nil {
		return nil, err
	}
	return &ListingsResolver{root: u.root, page: page}, nil
}

// ListingResolver exposes a listing. Bookings are visible to the host only.
type ListingResolver struct {
	root       *Resolver
	listing    *models.Listing
	authorized bool
}

func (l *ListingResolver) ID() graphql.ID { return graphql.ID(l.listing.ID.Hex()) }
func (l *ListingResolver) Title() string { return l.listing.Title }
func (l *ListingResolver) Description() string { return l.listing.Description }
func (l *ListingResolver) Image() string { return l.listing.Image }
func (l *ListingResolver) Type() string { return string(l.listing.Type) }
func (l *ListingResolver) Address() string { return l.listing.Address }
func (l *ListingResolver) City() string { return l.listing.City }
func (l *ListingResolver) Country() string { return l.listing.Country }
func (l *ListingResolver) Admin() string { return l.listing.Admin }
func (l *ListingResolver) Price() int32 { return int32(l.listing.Price) }
func (l *ListingResolver) NumOfGuests() int32 { return int32(l.listing.NumOfGuests) }

func (l *ListingResolver) Host(ctx context.Context) (*UserResolver, error) {
	host, err := l.root.UserService.GetUser(ctx, l.listing.Host)
	if err != nil {
		return nil, err
	}
	return &UserResolver{root: l.root, user: host}, nil
}

func (l *ListingResolver) Bookings(ctx context.Context, args pageArgs) (*BookingsResolver, error) {
	if !l.authorized {
		return nil, nil
	}
	page, err := l.root.ListingService.ListingBookings(ctx, l.listing, int64(args.Limit), int64(args.Page))
	if err != nil {
		return nil, err
	}
	return &BookingsResolver{root: l.root, page: page}, nil
}

// BookingsIndex is the index serialized as a JSON object string.
func (l *ListingResolver) BookingsIndex() (string, error) {
	index := l.listing.BookingsIndex
	if index == nil {
		index = models.BookingsIndex{}
	}
	b, err := json.Marshal(index)
	if err != nil {
		return "", utils.NewAppError(utils.KindInternal, "failed to encode bookings index", err)
	}
	return string(b), nil
}

type ListingsResolver struct {
	root *Resolver
	page *models.ListingsPage
}

func (l *ListingsResolver) Region() *string { return optional(l.page.Region) }
func (l *ListingsResolver) Total() int32 { return int32(l.page.Total) }

func (l *ListingsResolver) Result() []*ListingResolver {
	out := make([]*ListingResolver, 0, len(l.page.Result))
	for i := range l.page.Result {
		out = append(out, &ListingResolver{root: l.root, listing: &l.page.Result[i]})
	}
	return out
}

type BookingsResolver struct {
	root *Resolver
	page *models.BookingsPage
}

func (b *BookingsResolver) Total() int32 { return int32(b.page.Total) }

func (b *BookingsResolver) Result() []*BookingResolver {
	out := make([]*BookingResolver, 0, len(b.page.Result))
	for i := range b.page.Result {
		out = append(out, &BookingResolver{root: b.root, booking: &b.page.Result[i]})
	}
	return out
}

type BookingResolver struct {
	root    *Resolver
	booking *models.Booking
}

func (b *BookingResolver) ID() graphql.ID { return graphql.ID(b.booking.ID.Hex()) }
func (b *BookingResolver) CheckIn() string { return b.booking.CheckIn }
func (b *BookingResolver) CheckOut() string { return b.booking.CheckOut }

func (b *BookingResolver) Listing(ctx context.Context) (*ListingResolver, error) {
	l, err := b.root.ListingService.GetListing(ctx, b.booking.Listing.Hex())
	if err != nil {
		return nil, err
	}
	return &ListingResolver{root: b.root, listing: l}, nil
}

func (b *BookingResolver) Tenant(ctx context.Context) (*UserResolver, error) {
	u, err := b.root.UserService.GetUser(ctx, b.booking.Tenant)
	if err != nil {
		return nil, err
	}
	return &UserResolver{root: b.root, user: u}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
