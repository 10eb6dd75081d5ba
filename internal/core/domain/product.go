package domain

import (
	"errors"
	"time"
)

var (
	ErrNotApprovedCreator = errors.New("only approved creators can add products")
	ErrForbidden          = errors.New("access forbidden")
)

// Known product categories. The set is open: new tags are accepted as-is,
// these are just the ones the storefront renders with icons.
const (
	TypeBot     = "bot"
	TypeUserbot = "userbot"
	TypeWebsite = "website"
	TypeApp     = "app"
	TypeCoding  = "coding"
)

// Product is a catalog listing. CreatorID is validated against an approved
// creator at creation time only; a later approval revocation does not hide
// the product.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Type        string    `json:"type"`
	CreatorID   int64     `json:"creator_id"`
	DemoURL     string    `json:"demo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
