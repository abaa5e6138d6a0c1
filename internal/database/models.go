package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the row shape of the users table
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Location     *string   `bun:"location"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Listing is the row shape of the listings table.
// SellerName is only populated by queries that join users.
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID             uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	SellerID       uuid.UUID  `bun:"seller_id,type:uuid,notnull"`
	Title          string     `bun:"title,notnull"`
	Description    *string    `bun:"description"`
	ItemType       string     `bun:"item_type,notnull"`
	Quantity       int        `bun:"quantity,notnull"`
	Condition      *string    `bun:"condition"`
	Location       string     `bun:"location,notnull"`
	AvailableFrom  *time.Time `bun:"available_from,type:date"`
	AvailableUntil *time.Time `bun:"available_until,type:date"`
	Status         string     `bun:"status,notnull,default:'available'"`
	CreatedAt      time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt      time.Time  `bun:"updated_at,notnull,default:current_timestamp"`

	SellerName string `bun:"seller_name,scanonly"`
}
