package model

// Album is a titled collection of photos belonging to one user.
//
// UserID is set at creation and never changes - there is no "transfer album"
// operation anywhere in the API.
//
// Photos is the many-to-many association. List queries leave it as an empty
// slice (fetching every album's photos on a list would be wasteful); a
// single-album fetch populates it fully. We keep the field non-nil so the
// JSON shape is stable: clients always see a "photos" array, possibly empty.
type Album struct {
	ID     int64   `json:"id" db:"id"`
	Title  string  `json:"title" db:"title"`
	UserID int64   `json:"user_id" db:"user_id"`
	Photos []Photo `json:"photos"`
}

// OwnerID implements Owned.
func (a *Album) OwnerID() int64 { return a.UserID }
