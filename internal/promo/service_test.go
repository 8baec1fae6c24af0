package promo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop-service/internal/entity"
)

// fakeStore keeps codes in memory, keyed the way the SQL repository keys
// them.
type fakeStore struct {
	codes  map[string]*entity.PromoCode
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{codes: make(map[string]*entity.PromoCode), nextID: 1}
}

func (f *fakeStore) GetActiveByCode(_ context.Context, code string) (*entity.PromoCode, error) {
	p, ok := f.codes[code]
	if !ok || !p.Active {
		return nil, ErrCodeNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) List(_ context.Context) ([]entity.PromoCode, error) {
	var out []entity.PromoCode
	for _, p := range f.codes {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, p *entity.PromoCode) (*entity.PromoCode, error) {
	p.ID = f.nextID
	f.nextID++
	f.codes[p.Code] = p
	cp := *p
	return &cp, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int) (*entity.PromoCode, error) {
	for _, p := range f.codes {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrCodeNotFound
}

func (f *fakeStore) Update(_ context.Context, p *entity.PromoCode) error {
	for code, existing := range f.codes {
		if existing.ID == p.ID {
			delete(f.codes, code)
			cp := *p
			f.codes[p.Code] = &cp
			return nil
		}
	}
	return ErrCodeNotFound
}

func (f *fakeStore) Delete(_ context.Context, id int) error {
	for code, existing := range f.codes {
		if existing.ID == id {
			delete(f.codes, code)
			return nil
		}
	}
	return ErrCodeNotFound
}

func seed(store *fakeStore, code string, pct int64, active bool, expires *time.Time) {
	store.codes[code] = &entity.PromoCode{
		ID:                 store.nextID,
		Code:               code,
		DiscountPercentage: decimal.NewFromInt(pct),
		Active:             active,
		ExpiresAt:          expires,
	}
	store.nextID++
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.now = fixedClock
	return svc
}

func TestLookupActiveCode_NormalizesCandidate(t *testing.T) {
	store := newFakeStore()
	seed(store, "SAVE10", 10, true, nil)
	svc := newTestService(store)

	applied, err := svc.LookupActiveCode(context.Background(), "  saVe10  ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", applied.Code)
	assert.Equal(t, "10", applied.DiscountPercentage.String())
}

func TestLookupActiveCode_UnknownCode(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.LookupActiveCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestLookupActiveCode_EmptyCandidate(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.LookupActiveCode(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestLookupActiveCode_InactiveCode(t *testing.T) {
	store := newFakeStore()
	seed(store, "SAVE10", 10, false, nil)
	svc := newTestService(store)

	_, err := svc.LookupActiveCode(context.Background(), "SAVE10")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestLookupActiveCode_ExpiredCode(t *testing.T) {
	store := newFakeStore()
	expired := fixedClock().Add(-time.Hour)
	seed(store, "OLD", 10, true, &expired)
	svc := newTestService(store)

	_, err := svc.LookupActiveCode(context.Background(), "OLD")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestLookupActiveCode_FutureExpiryIsUsable(t *testing.T) {
	store := newFakeStore()
	future := fixedClock().Add(time.Hour)
	seed(store, "FRESH", 15, true, &future)
	svc := newTestService(store)

	applied, err := svc.LookupActiveCode(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, "FRESH", applied.Code)
}

func TestCreate_NormalizesAndStartsInactive(t *testing.T) {
	svc := newTestService(newFakeStore())

	created, err := svc.Create(context.Background(), " welcome5 ", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, "WELCOME5", created.Code)
	assert.False(t, created.Active)
}

func TestCreate_RejectsOutOfRangeDiscount(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), "BAD", decimal.NewFromInt(101))
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "BAD", decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestApply_PartialUpdate(t *testing.T) {
	store := newFakeStore()
	seed(store, "SAVE10", 10, false, nil)
	svc := newTestService(store)

	active := true
	updated, err := svc.Apply(context.Background(), 1, Update{Active: &active})
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, "SAVE10", updated.Code, "untouched fields keep their value")

	expires := fixedClock().Add(48 * time.Hour)
	updated, err = svc.Apply(context.Background(), 1, Update{ExpiresAt: &expires})
	require.NoError(t, err)
	require.NotNil(t, updated.ExpiresAt)

	updated, err = svc.Apply(context.Background(), 1, Update{ClearExpiry: true})
	require.NoError(t, err)
	assert.Nil(t, updated.ExpiresAt)
}

func TestApply_UnknownID(t *testing.T) {
	svc := newTestService(newFakeStore())

	active := true
	_, err := svc.Apply(context.Background(), 42, Update{Active: &active})
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	seed(store, "SAVE10", 10, true, nil)
	svc := newTestService(store)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrCodeNotFound)
}
