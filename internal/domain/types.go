package domain

// ID is used across domain entities.
type ID int64

// Role values stored on users.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
	Token  string `json:"-"`
}
