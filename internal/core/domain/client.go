package domain

import "time"

// Address is a client's postal address.
type Address struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// Preferences captures what a client likes to buy.
type Preferences struct {
	Gemstones []string `json:"gemstones,omitempty" bson:"gemstones,omitempty"`
	Metals    []string `json:"metals,omitempty" bson:"metals,omitempty"`
	Styles    []string `json:"styles,omitempty" bson:"styles,omitempty"`
}

// Client is a retail customer. ID is assigned by the store and never changes.
type Client struct {
	ID          string       `json:"id" bson:"_id"`
	FirstName   string       `json:"first_name" bson:"first_name"`
	LastName    string       `json:"last_name" bson:"last_name"`
	Email       string       `json:"email" bson:"email"`
	Phone       string       `json:"phone" bson:"phone"`
	Birthdate   *string      `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty" bson:"preferences,omitempty"`
	Tags        []string     `json:"tags,omitempty" bson:"tags,omitempty"`
	Notes       *string      `json:"notes,omitempty" bson:"notes,omitempty"`
	Address     *Address     `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// NewClient holds the caller-supplied fields of a client to be created.
type NewClient struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Birthdate   *string
	Preferences *Preferences
	Tags        []string
	Notes       *string
	Address     *Address
}

// UpdateClient is a partial update. Nil fields are left unchanged.
type UpdateClient struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	Birthdate   *string
	Preferences *Preferences
	Tags        *[]string
	Notes       *string
	Address     *Address
}

// IsEmpty reports whether the update carries no field at all.
func (u UpdateClient) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Phone == nil && u.Birthdate == nil && u.Preferences == nil &&
		u.Tags == nil && u.Notes == nil && u.Address == nil
}

// Apply copies the non-nil fields of u onto c.
func (u UpdateClient) Apply(c *Client) {
	if u.FirstName != nil {
		c.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		c.LastName = *u.LastName
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Birthdate != nil {
		c.Birthdate = u.Birthdate
	}
	if u.Preferences != nil {
		c.Preferences = u.Preferences
	}
	if u.Tags != nil {
		c.Tags = *u.Tags
	}
	if u.Notes != nil {
		c.Notes = u.Notes
	}
	if u.Address != nil {
		c.Address = u.Address
	}
}
