package models

// Viewer is the session principal returned by the login mutations.
type Viewer struct {
	ID         string
	Token      string
	Avatar     string
	WalletID   string
	DidRequest bool
}

// ViewerFromUser builds the authenticated viewer for u.
func ViewerFromUser(u *User) *Viewer {
	return &Viewer{
		ID:         u.ID,
		Token:      u.Token,
		Avatar:     u.Avatar,
		WalletID:   u.WalletID,
		DidRequest: true,
	}
}
