package listing

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("listing not found")
	ErrForbidden    = errors.New("not the owner of this listing")
)

// ValidationError carries a user-facing message and matches ErrInvalidInput
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// CreateInput is the body of a create request
type CreateInput struct {
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	ItemType       string  `json:"item_type"`
	Quantity       *int    `json:"quantity,omitempty"`
	Condition      *string `json:"condition,omitempty"`
	Location       string  `json:"location"`
	AvailableFrom  *string `json:"available_from,omitempty"`
	AvailableUntil *string `json:"available_until,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// UpdateInput is the body of an update request; omitted fields are left unchanged
type UpdateInput struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	ItemType       *string `json:"item_type,omitempty"`
	Quantity       *int    `json:"quantity,omitempty"`
	Condition      *string `json:"condition,omitempty"`
	Location       *string `json:"location,omitempty"`
	AvailableFrom  *string `json:"available_from,omitempty"`
	AvailableUntil *string `json:"available_until,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// toListing validates the input and builds a new listing owned by sellerID
func (in CreateInput) toListing(sellerID uuid.UUID) (*Listing, error) {
	title := strings.TrimSpace(in.Title)
	itemType := strings.TrimSpace(in.ItemType)
	location := strings.TrimSpace(in.Location)
	if title == "" || itemType == "" || location == "" {
		return nil, invalid("Title, item type, and location are required.")
	}

	l := &Listing{
		SellerID:    sellerID,
		Title:       title,
		Description: in.Description,
		ItemType:    itemType,
		Quantity:    1,
		Location:    location,
		Status:      StatusAvailable,
	}

	if in.Quantity != nil {
		if err := checkQuantity(*in.Quantity); err != nil {
			return nil, err
		}
		l.Quantity = *in.Quantity
	}

	if in.Condition != nil && *in.Condition != "" {
		c, err := parseCondition(*in.Condition)
		if err != nil {
			return nil, err
		}
		l.Condition = &c
	}

	if in.Status != nil && *in.Status != "" {
		s, err := parseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		l.Status = s
	}

	var err error
	if l.AvailableFrom, err = parseOptionalDate(in.AvailableFrom, "available_from"); err != nil {
		return nil, err
	}
	if l.AvailableUntil, err = parseOptionalDate(in.AvailableUntil, "available_until"); err != nil {
		return nil, err
	}
	if err := checkWindow(l.AvailableFrom, l.AvailableUntil); err != nil {
		return nil, err
	}

	return l, nil
}

// toPatch validates the input against the stored listing it will be applied to
func (in UpdateInput) toPatch(current Listing) (Patch, error) {
	var p Patch

	for _, f := range []struct {
		src *string
		dst **string
		msg string
	}{
		{in.Title, &p.Title, "Title cannot be empty."},
		{in.ItemType, &p.ItemType, "Item type cannot be empty."},
		{in.Location, &p.Location, "Location cannot be empty."},
	} {
		if f.src == nil {
			continue
		}
		v := strings.TrimSpace(*f.src)
		if v == "" {
			return Patch{}, invalid(f.msg)
		}
		*f.dst = &v
	}

	p.Description = in.Description

	if in.Quantity != nil {
		if err := checkQuantity(*in.Quantity); err != nil {
			return Patch{}, err
		}
		q := *in.Quantity
		p.Quantity = &q
	}

	if in.Condition != nil {
		c, err := parseCondition(*in.Condition)
		if err != nil {
			return Patch{}, err
		}
		p.Condition = &c
	}

	if in.Status != nil {
		s, err := parseStatus(*in.Status)
		if err != nil {
			return Patch{}, err
		}
		p.Status = &s
	}

	var err error
	if p.AvailableFrom, err = parseOptionalDate(in.AvailableFrom, "available_from"); err != nil {
		return Patch{}, err
	}
	if p.AvailableUntil, err = parseOptionalDate(in.AvailableUntil, "available_until"); err != nil {
		return Patch{}, err
	}

	next := p.Apply(current)
	if err := checkWindow(next.AvailableFrom, next.AvailableUntil); err != nil {
		return Patch{}, err
	}

	return p, nil
}

// checkQuantity bounds q to the INTEGER column range
func checkQuantity(q int) error {
	if q < 1 {
		return invalid("Quantity must be at least 1.")
	}
	if q > math.MaxInt32 {
		return invalid("Quantity is too large.")
	}
	return nil
}

func parseCondition(v string) (Condition, error) {
	c := Condition(v)
	if !c.Valid() {
		return "", invalid("Invalid condition value.")
	}
	return c, nil
}

func parseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", invalid("Invalid status value.")
	}
	return s, nil
}

// parseOptionalDate accepts YYYY-MM-DD or RFC 3339. Empty means absent.
func parseOptionalDate(v *string, field string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*v)

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, invalid("Invalid date format for " + field + ".")
}

func checkWindow(from, until *time.Time) error {
	if from != nil && until != nil && until.Before(*from) {
		return invalid("available_until cannot be before available_from.")
	}
	return nil
}
