package store

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a stored role value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Product is a catalog entry. Stock never goes negative: a purchase is
// rejected when the requested quantity exceeds the current stock.
type Product struct {
	ID    int
	Name  string
	Price decimal.Decimal
	Stock int
}

// Account is a registered user. The username is the primary key; there is
// no password, usernames are not secrets.
type Account struct {
	Username string
	Name     string
	Role     Role
}

// Sale is one row of the append-only sales ledger. Product holds a copy of
// the product's display name at time of purchase, not a reference to the
// catalog: the ledger must reflect what was sold even if the product is
// later renamed or removed.
type Sale struct {
	Username string
	Product  string
	Quantity int
	Total    decimal.Decimal
}
