package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Store is the persistence contract the service needs. Update and Delete
// must condition the write on both id and sellerID and report ErrNotFound
// when no row matched.
type Store interface {
	Create(ctx context.Context, l *Listing) (*Listing, error)
	ListAvailable(ctx context.Context) ([]Listing, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Update(ctx context.Context, id, sellerID uuid.UUID, p Patch) (*Listing, error)
	Delete(ctx context.Context, id, sellerID uuid.UUID) error
}

// Service handles listing business logic
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates the input and stores a new listing owned by sellerID
func (s *Service) Create(ctx context.Context, sellerID uuid.UUID, in CreateInput) (*Listing, error) {
	l, err := in.toListing(sellerID)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return created, nil
}

// ListAvailable returns every available listing, newest first
func (s *Service) ListAvailable(ctx context.Context) ([]Listing, error) {
	return s.store.ListAvailable(ctx)
}

// ListMine returns every listing owned by sellerID regardless of status
func (s *Service) ListMine(ctx context.Context, sellerID uuid.UUID) ([]Listing, error) {
	return s.store.ListBySeller(ctx, sellerID)
}

// Get returns a listing of any status
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return s.store.GetByID(ctx, id)
}

// Update applies a partial update on behalf of actorID.
// Lookup, ownership, validation, then a single owner-conditioned write.
func (s *Service) Update(ctx context.Context, actorID, id uuid.UUID, in UpdateInput) (*Listing, error) {
	current, err := s.authorize(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	patch, err := in.toPatch(*current)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.store.Update(ctx, id, actorID, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	// the write does not join users
	if updated.SellerName == "" {
		updated.SellerName = current.SellerName
	}

	return updated, nil
}

// Delete removes a listing on behalf of actorID
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := s.authorize(ctx, actorID, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id, actorID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return nil
}

// authorize loads the listing and checks that actorID owns it
func (s *Service) authorize(ctx context.Context, actorID, id uuid.UUID) (*Listing, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	if current.SellerID != actorID {
		return nil, ErrForbidden
	}

	return current, nil
}
