package usecase

import (
	"context"
	"log/slog"
	"sync"

	"storefront-cart/internal/domain/cart"

	"github.com/jinzhu/copier"
)

// AddOutcome reports what AddToCart did. InventoryExhausted adds leave the
// state untouched; the outcome lets callers tell that apart from an add.
type AddOutcome string

const (
	AddOutcomeAdded              AddOutcome = "added"
	AddOutcomeIncremented        AddOutcome = "incremented"
	AddOutcomeInventoryExhausted AddOutcome = "inventory_exhausted"
)

type UpdateOutcome string

const (
	UpdateOutcomeUpdated  UpdateOutcome = "updated"
	UpdateOutcomeNotFound UpdateOutcome = "not_found"
)

type RemoveOutcome string

const (
	RemoveOutcomeRemoved  RemoveOutcome = "removed"
	RemoveOutcomeCleared  RemoveOutcome = "removed_and_cleared"
	RemoveOutcomeNotFound RemoveOutcome = "not_found"
)

// CartStore owns the cart state and is the only writer to it. All readers
// receive deep-copied snapshots; mutations are serialized by the store's
// mutex so every operation is observably atomic. The only operation that
// does I/O while logically in flight is ApplyCoupon, whose network round
// trip happens outside the critical section.
type CartStore struct {
	mu        sync.Mutex
	pubMu     sync.Mutex // serializes persistence and notification in commit order
	state     cart.State
	couponSeq uint64 // monotonic lookup token; stale responses are discarded

	coupons CouponValidator
	repo    StateRepository
	logger  *slog.Logger

	subs    map[int]func(cart.State)
	nextSub int
}

func NewCartStore(repo StateRepository, coupons CouponValidator, logger *slog.Logger) *CartStore {
	s := &CartStore{
		state:   cart.NewState(),
		coupons: coupons,
		repo:    repo,
		logger:  logger,
		subs:    make(map[int]func(cart.State)),
	}
	s.rehydrate()
	return s
}

// rehydrate restores previously persisted state. Malformed or unreadable
// state falls back to empty defaults and never fails construction.
func (s *CartStore) rehydrate() {
	if s.repo == nil {
		return
	}
	st, ok, err := s.repo.Load(context.Background())
	if err != nil {
		s.logger.Warn("failed to load persisted cart state, starting empty", "error", err)
		return
	}
	if !ok {
		return
	}
	if st.Contents == nil {
		st.Contents = []cart.Line{}
	}
	s.state = st
}

// Subscribe registers fn to receive a state snapshot after every mutation.
// The returned func unregisters it.
func (s *CartStore) Subscribe(fn func(cart.State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Snapshot returns a deep copy of the current state.
func (s *CartStore) Snapshot() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AddToCart puts one unit of the product in the cart. An existing line whose
// quantity already reached the inventory captured at add time is left
// untouched.
func (s *CartStore) AddToCart(p cart.ProductSnapshot) AddOutcome {
	s.mu.Lock()
	var outcome AddOutcome
	if i := s.state.LineIndex(p.ID); i >= 0 {
		line := &s.state.Contents[i]
		if line.Quantity >= line.Inventory {
			s.mu.Unlock()
			return AddOutcomeInventoryExhausted
		}
		line.Quantity++
		outcome = AddOutcomeIncremented
	} else {
		s.state.Contents = append(s.state.Contents, p.NewLine())
		outcome = AddOutcomeAdded
	}
	s.calculateTotalLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, subs)
	return outcome
}

// UpdateQuantity replaces the quantity of the matching line verbatim. No
// clamping against inventory or negativity is performed. Unknown ids are
// silent no-ops.
func (s *CartStore) UpdateQuantity(productID, quantity int) UpdateOutcome {
	s.mu.Lock()
	i := s.state.LineIndex(productID)
	if i < 0 {
		s.mu.Unlock()
		return UpdateOutcomeNotFound
	}
	s.state.Contents[i].Quantity = quantity
	s.calculateTotalLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, subs)
	return UpdateOutcomeUpdated
}

// RemoveFromCart deletes the matching line. Removing the last line resets
// the whole cart, coupon included, via the ClearCart path.
func (s *CartStore) RemoveFromCart(productID int) RemoveOutcome {
	s.mu.Lock()
	i := s.state.LineIndex(productID)
	if i < 0 {
		s.mu.Unlock()
		return RemoveOutcomeNotFound
	}
	s.state.Contents = append(s.state.Contents[:i], s.state.Contents[i+1:]...)

	outcome := RemoveOutcomeRemoved
	if s.state.IsEmpty() {
		s.clearLocked()
		outcome = RemoveOutcomeCleared
	} else {
		s.calculateTotalLocked()
	}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, subs)
	return outcome
}

// CalculateTotal recomputes the derived totals from the current contents.
func (s *CartStore) CalculateTotal() {
	s.mu.Lock()
	s.calculateTotalLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, subs)
}

// ApplyDiscount recomputes discount and total against the current coupon
// percentage, whatever it is.
func (s *CartStore) ApplyDiscount() {
	s.mu.Lock()
	s.applyDiscountLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, subs)
}

// ApplyCoupon runs one validation round trip and unconditionally installs
// the validator's verdict, even a "not applied" one. Lookup failures
// propagate unchanged and leave prior coupon state intact. Overlapping
// lookups are sequenced by issue order; a response from a superseded lookup
// is dropped.
func (s *CartStore) ApplyCoupon(ctx context.Context, code string) error {
	s.mu.Lock()
	s.couponSeq++
	seq := s.couponSeq
	s.mu.Unlock()

	res, err := s.coupons.Validate(ctx, code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if seq != s.couponSeq {
		s.mu.Unlock()
		s.logger.Debug("dropping superseded coupon lookup", "code", code)
		return nil
	}
	s.state.Coupon = cart.Coupon{
		Name:       res.Name,
		Percentage: res.Percentage,
		Message:    res.Message,
	}
	s.applyDiscountLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, subs)
	return nil
}

// ClearCart resets everything to empty defaults. Idempotent.
func (s *CartStore) ClearCart() {
	s.mu.Lock()
	s.clearLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(snap, subs)
}

func (s *CartStore) clearLocked() {
	s.state = cart.NewState()
}

func (s *CartStore) calculateTotalLocked() {
	if s.state.Coupon.Active() {
		s.applyDiscountLocked()
		return
	}
	// Discount deliberately retains its prior value when no coupon is
	// active; only ApplyDiscount and ClearCart reset it. See DESIGN.md.
	s.state.Total = s.state.Subtotal()
}

func (s *CartStore) applyDiscountLocked() {
	subtotal := s.state.Subtotal()
	s.state.Discount = s.state.Coupon.Percentage / 100 * subtotal
	s.state.Total = subtotal - s.state.Discount
}

func (s *CartStore) snapshotLocked() cart.State {
	var cp cart.State
	if err := copier.CopyWithOption(&cp, &s.state, copier.Option{DeepCopy: true}); err != nil {
		s.logger.Error("failed to copy cart state", "error", err)
		cp = s.state
	}
	if cp.Contents == nil {
		cp.Contents = []cart.Line{}
	}
	return cp
}

// commitLocked captures the snapshot and subscriber list so persistence and
// notification can run outside the state lock. It also takes the publish
// lock before the state lock is released, so overlapping mutations persist
// and notify in commit order and a stale snapshot can never win the write.
func (s *CartStore) commitLocked() (cart.State, []func(cart.State)) {
	snap := s.snapshotLocked()
	subs := make([]func(cart.State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.pubMu.Lock()
	return snap, subs
}

// publish re-saves the state and notifies subscribers, then releases the
// publish lock taken in commitLocked. Persistence failures are logged, never
// surfaced: a cart mutation must not fail because the backing store is down.
func (s *CartStore) publish(snap cart.State, subs []func(cart.State)) {
	defer s.pubMu.Unlock()
	if s.repo != nil {
		if err := s.repo.Save(context.Background(), snap); err != nil {
			s.logger.Warn("failed to persist cart state", "error", err)
		}
	}
	for _, fn := range subs {
		fn(snap)
	}
}
