package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/offiswap/internal/database"
)

// Repository handles listing persistence in Postgres
type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

// Create inserts a listing and returns the stored row
func (r *Repository) Create(ctx context.Context, l *Listing) (*Listing, error) {
	row := mapModelToDB(l)

	_, err := r.db.NewInsert().
		Model(row).
		ExcludeColumn("id", "created_at", "updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return mapDBListingToModel(row), nil
}

// ListAvailable returns available listings with seller names, newest first
func (r *Repository) ListAvailable(ctx context.Context) ([]Listing, error) {
	var rows []database.Listing
	err := r.selectWithSeller(&rows).
		Where("l.status = ?", string(StatusAvailable)).
		OrderExpr("l.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available listings: %w", err)
	}

	return mapDBListings(rows), nil
}

// ListBySeller returns every listing owned by sellerID, newest first
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]Listing, error) {
	var rows []database.Listing
	err := r.selectWithSeller(&rows).
		Where("l.seller_id = ?", sellerID).
		OrderExpr("l.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller listings: %w", err)
	}

	return mapDBListings(rows), nil
}

// GetByID returns one listing of any status
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	row := new(database.Listing)
	err := r.selectWithSeller(row).
		Where("l.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return mapDBListingToModel(row), nil
}

// Update applies the patch in a single statement conditioned on both the
// listing id and the seller id. No matching row yields ErrNotFound.
func (r *Repository) Update(ctx context.Context, id, sellerID uuid.UUID, p Patch) (*Listing, error) {
	row := new(database.Listing)
	q := r.db.NewUpdate().Model(row)

	if p.Title != nil {
		q = q.Set("title = ?", *p.Title)
	}
	if p.Description != nil {
		q = q.Set("description = ?", *p.Description)
	}
	if p.ItemType != nil {
		q = q.Set("item_type = ?", *p.ItemType)
	}
	if p.Quantity != nil {
		q = q.Set("quantity = ?", *p.Quantity)
	}
	if p.Condition != nil {
		q = q.Set("condition = ?", string(*p.Condition))
	}
	if p.Location != nil {
		q = q.Set("location = ?", *p.Location)
	}
	if p.AvailableFrom != nil {
		q = q.Set("available_from = ?", *p.AvailableFrom)
	}
	if p.AvailableUntil != nil {
		q = q.Set("available_until = ?", *p.AvailableUntil)
	}
	if p.Status != nil {
		q = q.Set("status = ?", string(*p.Status))
	}

	result, err := q.
		Set("updated_at = NOW()").
		Where("l.id = ?", id).
		Where("l.seller_id = ?", sellerID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBListingToModel(row), nil
}

// Delete removes the listing if it is still owned by sellerID
func (r *Repository) Delete(ctx context.Context, id, sellerID uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Listing)(nil)).
		Where("l.id = ?", id).
		Where("l.seller_id = ?", sellerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) selectWithSeller(model any) *bun.SelectQuery {
	return r.db.NewSelect().
		Model(model).
		ColumnExpr("l.*").
		ColumnExpr("u.name AS seller_name").
		Join("JOIN users AS u ON u.id = l.seller_id")
}

func mapModelToDB(l *Listing) *database.Listing {
	row := &database.Listing{
		ID:             l.ID,
		SellerID:       l.SellerID,
		Title:          l.Title,
		Description:    l.Description,
		ItemType:       l.ItemType,
		Quantity:       l.Quantity,
		Location:       l.Location,
		AvailableFrom:  l.AvailableFrom,
		AvailableUntil: l.AvailableUntil,
		Status:         string(l.Status),
	}
	if l.Condition != nil {
		c := string(*l.Condition)
		row.Condition = &c
	}
	return row
}

func mapDBListingToModel(row *database.Listing) *Listing {
	l := &Listing{
		ID:             row.ID,
		SellerID:       row.SellerID,
		SellerName:     row.SellerName,
		Title:          row.Title,
		Description:    row.Description,
		ItemType:       row.ItemType,
		Quantity:       row.Quantity,
		Location:       row.Location,
		AvailableFrom:  row.AvailableFrom,
		AvailableUntil: row.AvailableUntil,
		Status:         Status(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Condition != nil {
		c := Condition(*row.Condition)
		l.Condition = &c
	}
	return l
}

func mapDBListings(rows []database.Listing) []Listing {
	out := make([]Listing, 0, len(rows))
	for i := range rows {
		out = append(out, *mapDBListingToModel(&rows[i]))
	}
	return out
}
