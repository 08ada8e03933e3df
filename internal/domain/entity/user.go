package entity

// User represents a registered customer account. The ID is a 20-character
// opaque string that doubles as the document key; it is immutable for the
// lifetime of the account.
type User struct {
	ID             string `json:"userId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashedPassword"` // salted hash; the plaintext is never stored
	Address1       string `json:"address1"`
	Address2       string `json:"address2"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postalCode"`
}

// FullName returns the customer display name used on order records.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
