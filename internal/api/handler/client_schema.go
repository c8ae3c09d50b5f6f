package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type addressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type preferencesPayload struct {
	Gemstones []string `json:"gemstones"`
	Metals    []string `json:"metals"`
	Styles    []string `json:"styles"`
}

type createClientRequest struct {
	FirstName   string              `json:"first_name"  validate:"required"`
	LastName    string              `json:"last_name"   validate:"required"`
	Email       string              `json:"email"       validate:"required,email"`
	Phone       string              `json:"phone"       validate:"required"`
	Birthdate   *string             `json:"birthdate"   validate:"omitempty,datetime=2006-01-02"`
	Preferences *preferencesPayload `json:"preferences"`
	Tags        []string            `json:"tags"`
	Notes       *string             `json:"notes"`
	Address     *addressPayload     `json:"address"`
}

// updateClientRequest carries only the fields being changed. Present fields
// follow the same rules as on create.
type updateClientRequest struct {
	FirstName   *string             `json:"first_name"  validate:"omitnil,min=1"`
	LastName    *string             `json:"last_name"   validate:"omitnil,min=1"`
	Email       *string             `json:"email"       validate:"omitnil,email"`
	Phone       *string             `json:"phone"       validate:"omitnil,min=1"`
	Birthdate   *string             `json:"birthdate"   validate:"omitnil,datetime=2006-01-02"`
	Preferences *preferencesPayload `json:"preferences"`
	Tags        *[]string           `json:"tags"`
	Notes       *string             `json:"notes"`
	Address     *addressPayload     `json:"address"`
}

type updateRoleRequest struct {
	RoleID string `json:"role_id" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Redirect string `json:"redirect" form:"redirect" query:"redirect"`
}

// --- Response types ---

type clientResponse struct {
	ID          string              `json:"id"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Birthdate   *string             `json:"birthdate"`
	Preferences *preferencesPayload `json:"preferences"`
	Tags        []string            `json:"tags"`
	Notes       *string             `json:"notes"`
	Address     *addressPayload     `json:"address"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type listClientsResponse struct {
	Data  []clientResponse `json:"data"`
	Count int              `json:"count"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type meResponse struct {
	ID          string                       `json:"id"`
	FirstName   string                       `json:"first_name"`
	LastName    string                       `json:"last_name"`
	Email       string                       `json:"email"`
	Phone       *string                      `json:"phone,omitempty"`
	AvatarURL   *string                      `json:"avatar_url,omitempty"`
	Role        string                       `json:"role"`
	Permissions map[string]permissionActions `json:"permissions"`
}

type permissionActions struct {
	Read   bool `json:"read"`
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

type pageResponse struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}
