// Package memstore keeps users and listings in process memory. It backs
// STORE=memory and the end-to-end tests, with the same contract as the
// Postgres repositories: unique emails, seller names joined on reads and
// owner-conditioned updates and deletes.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/offiswap/internal/listing"
	"github.com/redmonkez12/offiswap/internal/user"
)

var ErrUnknownSeller = errors.New("seller does not exist")

type listingRow struct {
	listing.Listing
	seq uint64
}

// Store owns the shared state behind the user and listing repositories
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]user.User
	emails   map[string]uuid.UUID
	listings map[uuid.UUID]listingRow
	seq      uint64
	now      func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]user.User),
		emails:   make(map[string]uuid.UUID),
		listings: make(map[uuid.UUID]listingRow),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// PingContext always succeeds; it matches (*sql.DB).PingContext for health checks
func (s *Store) PingContext(context.Context) error { return nil }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Listings() *ListingRepository { return &ListingRepository{s: s} }

// UserRepository implements the credential store
type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, name, email, passwordHash string, location *string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := r.s.emails[key]; exists {
		return nil, user.ErrDuplicateEmail
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Location:     cloneString(location),
		CreatedAt:    r.s.now(),
	}
	r.s.users[u.ID] = u
	r.s.emails[key] = u.ID

	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[strings.ToLower(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	return cloneUser(r.s.users[id]), nil
}

// ListingRepository implements listing.Store
type ListingRepository struct {
	s *Store
}

func (r *ListingRepository) Create(_ context.Context, l *listing.Listing) (*listing.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[l.SellerID]; !ok {
		return nil, ErrUnknownSeller
	}

	now := r.s.now()
	row := cloneListing(*l)
	row.ID = uuid.New()
	row.SellerName = ""
	row.CreatedAt = now
	row.UpdatedAt = now
	if row.Status == "" {
		row.Status = listing.StatusAvailable
	}
	if row.Quantity == 0 {
		row.Quantity = 1
	}

	r.s.seq++
	r.s.listings[row.ID] = listingRow{Listing: row, seq: r.s.seq}

	out := cloneListing(row)
	return &out, nil
}

func (r *ListingRepository) ListAvailable(_ context.Context) ([]listing.Listing, error) {
	return r.list(func(l listing.Listing) bool { return l.Status == listing.StatusAvailable }), nil
}

func (r *ListingRepository) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]listing.Listing, error) {
	return r.list(func(l listing.Listing) bool { return l.SellerID == sellerID }), nil
}

func (r *ListingRepository) GetByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.listings[id]
	if !ok {
		return nil, listing.ErrNotFound
	}
	out := r.withSeller(row.Listing)
	return &out, nil
}

func (r *ListingRepository) Update(_ context.Context, id, sellerID uuid.UUID, p listing.Patch) (*listing.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.listings[id]
	if !ok || row.SellerID != sellerID {
		return nil, listing.ErrNotFound
	}

	updated := cloneListing(p.Apply(row.Listing))
	updated.UpdatedAt = r.s.now()
	r.s.listings[id] = listingRow{Listing: updated, seq: row.seq}

	out := cloneListing(updated)
	return &out, nil
}

func (r *ListingRepository) Delete(_ context.Context, id, sellerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.listings[id]
	if !ok || row.SellerID != sellerID {
		return listing.ErrNotFound
	}
	delete(r.s.listings, id)
	return nil
}

// list returns matching listings newest first; insertion order breaks ties
func (r *ListingRepository) list(match func(listing.Listing) bool) []listing.Listing {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]listingRow, 0, len(r.s.listings))
	for _, row := range r.s.listings {
		if match(row.Listing) {
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]listing.Listing, len(rows))
	for i, row := range rows {
		out[i] = r.withSeller(row.Listing)
	}
	return out
}

// withSeller must be called with the lock held
func (r *ListingRepository) withSeller(l listing.Listing) listing.Listing {
	out := cloneListing(l)
	if u, ok := r.s.users[l.SellerID]; ok {
		out.SellerName = u.Name
	}
	return out
}

func cloneUser(u user.User) *user.User {
	u.Location = cloneString(u.Location)
	return &u
}

func cloneListing(l listing.Listing) listing.Listing {
	l.Description = cloneString(l.Description)
	if l.Condition != nil {
		c := *l.Condition
		l.Condition = &c
	}
	l.AvailableFrom = cloneTime(l.AvailableFrom)
	l.AvailableUntil = cloneTime(l.AvailableUntil)
	return l
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
