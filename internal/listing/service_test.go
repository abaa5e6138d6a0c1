package listing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/offiswap/internal/listing"
	"github.com/redmonkez12/offiswap/internal/memstore"
)

type fixture struct {
	svc    *listing.Service
	seller uuid.UUID
	other  uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	seller, err := store.Users().Create(ctx, "Acme", "ops@acme.test", "hash", nil)
	require.NoError(t, err)
	other, err := store.Users().Create(ctx, "Globex", "it@globex.test", "hash", nil)
	require.NoError(t, err)

	return fixture{
		svc:    listing.NewService(store.Listings()),
		seller: seller.ID,
		other:  other.ID,
	}
}

func ptr[T any](v T) *T { return &v }

func (f fixture) create(t *testing.T, in listing.CreateInput) *listing.Listing {
	t.Helper()
	l, err := f.svc.Create(context.Background(), f.seller, in)
	require.NoError(t, err)
	return l
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   listing.CreateInput
		msg  string
	}{
		{"missing title", listing.CreateInput{ItemType: "chair", Location: "Berlin"}, "Title, item type, and location are required."},
		{"blank location", listing.CreateInput{Title: "Chair", ItemType: "chair", Location: "  "}, "Title, item type, and location are required."},
		{"bad condition", listing.CreateInput{Title: "Chair", ItemType: "chair", Location: "Berlin", Condition: ptr("broken")}, "Invalid condition value."},
		{"bad status", listing.CreateInput{Title: "Chair", ItemType: "chair", Location: "Berlin", Status: ptr("sold")}, "Invalid status value."},
		{"zero quantity", listing.CreateInput{Title: "Chair", ItemType: "chair", Location: "Berlin", Quantity: ptr(0)}, "Quantity must be at least 1."},
		{"quantity above column range", listing.CreateInput{Title: "Chair", ItemType: "chair", Location: "Berlin", Quantity: ptr(3000000000)}, "Quantity is too large."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.seller, tt.in)
			require.ErrorIs(t, err, listing.ErrInvalidInput)

			var verr *listing.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.msg, verr.Message)
		})
	}
}

func TestCreate_Defaults(t *testing.T) {
	f := newFixture(t)

	l := f.create(t, listing.CreateInput{Title: "Chair", ItemType: "chair", Location: "Berlin"})

	assert.Equal(t, 1, l.Quantity)
	assert.Equal(t, listing.StatusAvailable, l.Status)
	assert.Equal(t, f.seller, l.SellerID)
	assert.Nil(t, l.Condition)
}

func TestCreate_AvailabilityWindow(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.seller, listing.CreateInput{
		Title: "Chair", ItemType: "chair", Location: "Berlin",
		AvailableFrom: ptr("2025-05-10"), AvailableUntil: ptr("2025-05-01"),
	})
	assert.ErrorIs(t, err, listing.ErrInvalidInput)

	l := f.create(t, listing.CreateInput{
		Title: "Chair", ItemType: "chair", Location: "Berlin",
		AvailableFrom: ptr("2025-05-01"), AvailableUntil: ptr("2025-05-10"),
	})
	require.NotNil(t, l.AvailableFrom)
	assert.Equal(t, "2025-05-01", l.AvailableFrom.Format("2006-01-02"))
}

func TestListAvailable_ExcludesOtherStatuses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	avail := f.create(t, listing.CreateInput{Title: "Desk", ItemType: "desk", Location: "Berlin"})
	claimed := f.create(t, listing.CreateInput{Title: "Lamp", ItemType: "lamp", Location: "Berlin", Status: ptr("claimed")})

	all, err := f.svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, avail.ID, all[0].ID)
	assert.Equal(t, "Acme", all[0].SellerName)

	mine, err := f.svc.ListMine(ctx, f.seller)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	got, err := f.svc.Get(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.StatusClaimed, got.Status)

	theirs, err := f.svc.ListMine(ctx, f.other)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestUpdate_PartialKeepsOtherFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	l := f.create(t, listing.CreateInput{
		Title: "Desk", ItemType: "desk", Location: "Berlin",
		Quantity: ptr(3), Condition: ptr("good"), Description: ptr("oak"),
	})

	updated, err := f.svc.Update(ctx, f.seller, l.ID, listing.UpdateInput{Location: ptr("Hamburg")})
	require.NoError(t, err)

	assert.Equal(t, "Hamburg", updated.Location)
	assert.Equal(t, "Desk", updated.Title)
	assert.Equal(t, 3, updated.Quantity)
	require.NotNil(t, updated.Condition)
	assert.Equal(t, listing.ConditionGood, *updated.Condition)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "oak", *updated.Description)
	assert.Equal(t, "Acme", updated.SellerName)
}

func TestUpdate_Forbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	l := f.create(t, listing.CreateInput{Title: "Desk", ItemType: "desk", Location: "Berlin"})

	_, err := f.svc.Update(ctx, f.other, l.ID, listing.UpdateInput{Status: ptr("claimed")})
	assert.ErrorIs(t, err, listing.ErrForbidden)

	got, err := f.svc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.StatusAvailable, got.Status)
}

func TestUpdate_OwnershipCheckedBeforeValidation(t *testing.T) {
	f := newFixture(t)

	l := f.create(t, listing.CreateInput{Title: "Desk", ItemType: "desk", Location: "Berlin"})

	_, err := f.svc.Update(context.Background(), f.other, l.ID, listing.UpdateInput{Status: ptr("sold")})
	assert.ErrorIs(t, err, listing.ErrForbidden)
}

func TestUpdate_InvalidValues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	l := f.create(t, listing.CreateInput{
		Title: "Desk", ItemType: "desk", Location: "Berlin", AvailableFrom: ptr("2025-05-10"),
	})

	_, err := f.svc.Update(ctx, f.seller, l.ID, listing.UpdateInput{Condition: ptr("mint")})
	assert.ErrorIs(t, err, listing.ErrInvalidInput)

	_, err = f.svc.Update(ctx, f.seller, l.ID, listing.UpdateInput{Title: ptr("")})
	assert.ErrorIs(t, err, listing.ErrInvalidInput)

	_, err = f.svc.Update(ctx, f.seller, l.ID, listing.UpdateInput{Quantity: ptr(3000000000)})
	assert.ErrorIs(t, err, listing.ErrInvalidInput)

	_, err = f.svc.Update(ctx, f.seller, l.ID, listing.UpdateInput{AvailableUntil: ptr("2025-05-01")})
	assert.ErrorIs(t, err, listing.ErrInvalidInput, "window is checked against the stored start")
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Update(context.Background(), f.seller, uuid.New(), listing.UpdateInput{Title: ptr("x")})
	assert.ErrorIs(t, err, listing.ErrNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	l := f.create(t, listing.CreateInput{Title: "Desk", ItemType: "desk", Location: "Berlin"})

	assert.ErrorIs(t, f.svc.Delete(ctx, f.other, l.ID), listing.ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, f.seller, l.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, f.seller, l.ID), listing.ErrNotFound)

	_, err := f.svc.Get(ctx, l.ID)
	assert.ErrorIs(t, err, listing.ErrNotFound)
}
