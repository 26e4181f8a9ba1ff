package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bookhive-app/bookhive-golang/internal/cart"
	"github.com/bookhive-app/bookhive-golang/internal/models"
)

// State is the checkout flow's position. Both the buy and the rent flow move
// Loading → Ready → Confirming → Completed; there are no other transitions.
type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateConfirming State = "confirming"
	StateCompleted  State = "completed"
)

// LocationFallback is shown when the delivery-location fetch fails. A missing
// location degrades the summary, it never blocks reaching Ready.
const LocationFallback = "Location unavailable"

// ErrNotReady is returned when Confirm is called before Load has completed.
var ErrNotReady = errors.New("checkout flow is not ready")

// Locator resolves the signed-in user's delivery location line
// ("City, State - Pincode").
type Locator interface {
	LocationLine(ctx context.Context, userID int64) (string, error)
}

// Summary is what the Ready state displays.
type Summary struct {
	Mode     models.Mode     `json:"mode"`
	Location string          `json:"location"`
	Payable  decimal.Decimal `json:"payable"`
	// Rent flow only: the refundable deposit collected alongside the payable
	// flat fee. Zero in the buy flow.
	Deposit decimal.Decimal `json:"deposit"`
}

// Flow drives one checkout attempt. A flow is owned by a single request and
// is not safe for concurrent use; the only internal concurrency is the
// Loading fan-out, which is joined before Load returns.
type Flow struct {
	mode    models.Mode
	store   cart.Store
	locator Locator

	state   State
	summary Summary
}

func NewFlow(mode models.Mode, store cart.Store, locator Locator) *Flow {
	return &Flow{
		mode:    mode,
		store:   store,
		locator: locator,
		state:   StateLoading,
	}
}

func (f *Flow) State() State {
	return f.state
}

// Load fetches the delivery location and the aggregated cart snapshot
// concurrently and moves the flow to Ready. Either fetch may fail without
// aborting the flow: a failed location fetch falls back to a placeholder
// line, a failed snapshot fetch falls back to zero totals.
func (f *Flow) Load(ctx context.Context, userID int64) Summary {
	var (
		wg       sync.WaitGroup
		location string
		locErr   error
		totals   cart.Totals
		cartErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		location, locErr = f.locator.LocationLine(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		var items []models.CartItem
		items, cartErr = f.store.List(ctx, userID)
		totals = cart.Aggregate(items)
	}()
	wg.Wait()

	if locErr != nil || location == "" {
		location = LocationFallback
	}
	if cartErr != nil {
		totals = cart.Aggregate(nil)
	}

	f.summary = Summary{
		Mode:     f.mode,
		Location: location,
		Deposit:  decimal.Zero,
	}
	switch f.mode {
	case models.ModeRent:
		f.summary.Payable = totals.RentPayable()
		f.summary.Deposit = totals.DepositAmount
	default:
		f.summary.Payable = totals.TotalBuyAmount
	}

	f.state = StateReady
	return f.summary
}

// Confirm acknowledges the user's confirmation action and completes the
// flow. There is no payment call behind it; the QR on screen is the whole
// payment affordance. Completion sends the user back to the dashboard and
// leaves the cart untouched.
// TODO: decide whether completion should clear the cart and record an order;
// the mobile app never did either.
func (f *Flow) Confirm() (string, error) {
	if f.state != StateReady {
		return "", ErrNotReady
	}

	f.state = StateConfirming
	message := "Thank you! Your order is being processed."
	if f.mode == models.ModeRent {
		message = "Thank you! Your rented books are on the way."
	}
	f.state = StateCompleted

	return message, nil
}

// Summary returns the Ready-state payload computed by Load.
func (f *Flow) Summary() Summary {
	return f.summary
}
