package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a platform member. The same record acts as tenant and as host.
type User struct {
	ID       string               `bson:"_id" json:"id"`                               // Identity provider subject, or the fixed guest id
	Token    string               `bson:"token" json:"-"`                              // Current anti-forgery session token
	Name     string               `bson:"name" json:"name"`                            // Display name
	Avatar   string               `bson:"avatar" json:"avatar"`                        // Avatar URL
	Contact  string               `bson:"contact" json:"contact"`                      // Primary email
	WalletID string               `bson:"walletId,omitempty" json:"walletId,omitempty"` // Linked Stripe account, empty when not connected
	Income   int64                `bson:"income" json:"income"`                        // Lifetime host income in cents
	Bookings []primitive.ObjectID `bson:"bookings" json:"bookings"`                    // Bookings made as tenant
	Listings []primitive.ObjectID `bson:"listings" json:"listings"`                    // Listings owned as host
}

// HasWallet reports whether the user can receive payouts.
func (u *User) HasWallet() bool {
	return u.WalletID != ""
}
