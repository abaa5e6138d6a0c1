package listing

import (
	"time"

	"github.com/google/uuid"
)

// Condition is the physical state of a listed item
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Status is where a listing is in the exchange lifecycle.
// Any status may move to any other; only the seller may move it.
type Status string

const (
	StatusAvailable Status = "available"
	StatusClaimed   Status = "claimed"
	StatusExchanged Status = "exchanged"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusClaimed, StatusExchanged:
		return true
	}
	return false
}

type Listing struct {
	ID             uuid.UUID  `json:"id"`
	SellerID       uuid.UUID  `json:"seller_id"`
	SellerName     string     `json:"seller_name,omitempty"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	ItemType       string     `json:"item_type"`
	Quantity       int        `json:"quantity"`
	Condition      *Condition `json:"condition"`
	Location       string     `json:"location"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Patch is a validated partial update. Nil fields keep their stored value.
type Patch struct {
	Title          *string
	Description    *string
	ItemType       *string
	Quantity       *int
	Condition      *Condition
	Location       *string
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	Status         *Status
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply returns a copy of l with the patch fields written over it
func (p Patch) Apply(l Listing) Listing {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = p.Description
	}
	if p.ItemType != nil {
		l.ItemType = *p.ItemType
	}
	if p.Quantity != nil {
		l.Quantity = *p.Quantity
	}
	if p.Condition != nil {
		l.Condition = p.Condition
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.AvailableFrom != nil {
		l.AvailableFrom = p.AvailableFrom
	}
	if p.AvailableUntil != nil {
		l.AvailableUntil = p.AvailableUntil
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	return l
}
