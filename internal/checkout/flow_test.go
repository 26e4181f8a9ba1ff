package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive-app/bookhive-golang/internal/cart"
	"github.com/bookhive-app/bookhive-golang/internal/models"
)

type fakeStore struct {
	items   []models.CartItem
	listErr error
	removed int
}

func (f *fakeStore) List(ctx context.Context, userID int64) ([]models.CartItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeStore) Add(ctx context.Context, userID int64, snap models.BookSnapshot, mode models.Mode) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeStore) UpdateQuantity(ctx context.Context, userID int64, id string, delta int) error {
	return errors.New("not used")
}

func (f *fakeStore) Remove(ctx context.Context, userID int64, id string) error {
	f.removed++
	return nil
}

type fakeLocator struct {
	line string
	err  error
}

func (f fakeLocator) LocationLine(ctx context.Context, userID int64) (string, error) {
	return f.line, f.err
}

func rentItem(rent int64, qty int) models.CartItem {
	return models.CartItem{Rent: decimal.NewFromInt(rent), Quantity: qty, Mode: models.ModeRent}
}

func buyItem(price int64, qty int) models.CartItem {
	return models.CartItem{Price: decimal.NewFromInt(price), Quantity: qty, Mode: models.ModeBuy}
}

func TestBuyFlowReachesReadyWithPayable(t *testing.T) {
	store := &fakeStore{items: []models.CartItem{buyItem(399, 1), buyItem(199, 3)}}
	flow := NewFlow(models.ModeBuy, store, fakeLocator{line: "Chennai, Tamil Nadu - 600001"})

	require.Equal(t, StateLoading, flow.State())
	summary := flow.Load(context.Background(), 1)

	assert.Equal(t, StateReady, flow.State())
	assert.Equal(t, "Chennai, Tamil Nadu - 600001", summary.Location)
	assert.Equal(t, "996", summary.Payable.String())
	assert.True(t, summary.Deposit.IsZero())
}

func TestRentFlowSplitsDepositAndPayable(t *testing.T) {
	store := &fakeStore{items: []models.CartItem{rentItem(150, 2)}}
	flow := NewFlow(models.ModeRent, store, fakeLocator{line: "Pune, Maharashtra - 411001"})

	summary := flow.Load(context.Background(), 1)

	assert.Equal(t, "300", summary.Deposit.String())
	assert.Equal(t, "200", summary.Payable.String())
}

func TestReadyReachedWhenLocationFetchFails(t *testing.T) {
	store := &fakeStore{items: []models.CartItem{buyItem(100, 1)}}
	flow := NewFlow(models.ModeBuy, store, fakeLocator{err: errors.New("geocode down")})

	summary := flow.Load(context.Background(), 1)

	// The flow must not stay in Loading: a missing location only degrades
	// the summary line.
	assert.Equal(t, StateReady, flow.State())
	assert.Equal(t, LocationFallback, summary.Location)
	assert.Equal(t, "100", summary.Payable.String())
}

func TestReadyReachedWhenSnapshotFetchFails(t *testing.T) {
	store := &fakeStore{listErr: cart.ErrStoreUnavailable}
	flow := NewFlow(models.ModeBuy, store, fakeLocator{line: "Delhi, Delhi - 110001"})

	summary := flow.Load(context.Background(), 1)

	assert.Equal(t, StateReady, flow.State())
	assert.True(t, summary.Payable.IsZero())
}

func TestConfirmRequiresReady(t *testing.T) {
	flow := NewFlow(models.ModeBuy, &fakeStore{}, fakeLocator{})

	_, err := flow.Confirm()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestConfirmCompletesAndLeavesCartAlone(t *testing.T) {
	store := &fakeStore{items: []models.CartItem{buyItem(250, 1)}}
	flow := NewFlow(models.ModeBuy, store, fakeLocator{line: "Mumbai, Maharashtra - 400001"})
	flow.Load(context.Background(), 1)

	message, err := flow.Confirm()
	require.NoError(t, err)
	assert.NotEmpty(t, message)
	assert.Equal(t, StateCompleted, flow.State())
	assert.Zero(t, store.removed, "completion must not clear the cart")

	// A completed flow cannot be confirmed again.
	_, err = flow.Confirm()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestPaymentQREncodes(t *testing.T) {
	png, err := PaymentQR("upi://pay?pa=bookhive@upi&pn=BookHive")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
