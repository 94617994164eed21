package model

// Photo is a single photo record. The image itself lives at URL - this
// service stores metadata only.
//
// WHY Comment string (not *string)?
// The comment is optional, but we use the empty string as the zero value
// rather than a nullable pointer - simpler to work with and safe to display.
type Photo struct {
	ID      int64  `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	URL     string `json:"url" db:"url"`
	Comment string `json:"comment" db:"comment"`
	UserID  int64  `json:"user_id" db:"user_id"`
}

// OwnerID implements Owned.
func (p *Photo) OwnerID() int64 { return p.UserID }

// Owned is implemented by every resource that belongs to a single user.
// The service layer's ownership check is written once against this interface
// instead of being duplicated per resource type.
type Owned interface {
	OwnerID() int64
}
