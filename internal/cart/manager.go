package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mitienda/storefront-backend/internal/checkout"
	"github.com/mitienda/storefront-backend/internal/validation"
	"github.com/mitienda/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
	"github.com/mitienda/storefront-backend/pkg/metrics"
	"github.com/mitienda/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Listener observes cart changes. Listeners run synchronously in
// registration order while the manager lock is held.
type Listener func(sessionID string, entries []types.CartEntry)

// Summary is the cart state returned from every operation.
type Summary struct {
	Entries   []types.CartEntry `json:"items"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	ItemCount int               `json:"item_count"`
}

// Manager owns all in-memory carts, keyed by session ID. Mutations are
// serialized; snapshots are written best-effort after each change, so a
// storage outage degrades persistence without losing the live cart.
type Manager struct {
	mu         sync.Mutex
	carts      map[string][]types.CartEntry
	loaded     map[string]bool
	snaps      SnapshotStore
	logg       *logger.Logger
	metrics    *metrics.CartMetrics
	maxItems   int
	maxPerItem int
	listeners  []Listener
}

// NewManager wires a cart manager. maxItems caps total units per cart,
// maxPerItem caps units of a single product.
func NewManager(snaps SnapshotStore, logg *logger.Logger, cartMetrics *metrics.CartMetrics, maxItems, maxPerItem int) (*Manager, error) {
	if snaps == nil {
		return nil, fmt.Errorf("cart: snapshot store is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("cart: logger is required")
	}
	if maxItems < 1 || maxPerItem < 1 {
		return nil, fmt.Errorf("cart: item caps must be positive")
	}
	return &Manager{
		carts:      make(map[string][]types.CartEntry),
		loaded:     make(map[string]bool),
		snaps:      snaps,
		logg:       logg,
		metrics:    cartMetrics,
		maxItems:   maxItems,
		maxPerItem: maxPerItem,
	}, nil
}

// Subscribe registers a listener for cart mutations.
func (m *Manager) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Get returns the current cart for the session, restoring it from the
// snapshot store on first access.
func (m *Manager) Get(ctx context.Context, sessionID string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.entriesLocked(ctx, sessionID)
	return summarize(entries), nil
}

// AddItem puts quantity units of the product in the cart, merging with
// an existing line for the same product. The cart is left untouched
// when any check fails.
func (m *Manager) AddItem(ctx context.Context, sessionID string, product models.Product, quantity int) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.entriesLocked(ctx, sessionID)

	if !checkout.IsInStock(product, quantity) {
		m.metrics.IncOperation("add", "rejected")
		return summarize(entries), pkgerrors.New(pkgerrors.CodeOutOfStock, "product is out of stock").
			WithDetails(map[string]any{"product_id": product.ID.String(), "stock": product.Stock})
	}

	if checkout.CartItemCount(entries) >= m.maxItems {
		m.metrics.IncOperation("add", "rejected")
		return summarize(entries), pkgerrors.New(pkgerrors.CodeCartFull, "cart unit limit reached").
			WithDetails(map[string]any{"max_items": m.maxItems})
	}

	next := append([]types.CartEntry(nil), entries...)
	merged := false
	for i, entry := range next {
		if entry.Product.ID != product.ID {
			continue
		}
		newQuantity := entry.Quantity + quantity
		if err := validation.ValidateQuantity(newQuantity, product.Stock, m.maxPerItem); err != nil {
			m.metrics.IncOperation("add", "rejected")
			return summarize(entries), err
		}
		next[i].Quantity = newQuantity
		next[i].Product = product
		merged = true
		break
	}
	if !merged {
		if err := validation.ValidateQuantity(quantity, product.Stock, m.maxPerItem); err != nil {
			m.metrics.IncOperation("add", "rejected")
			return summarize(entries), err
		}
		next = append(next, types.CartEntry{Product: product, Quantity: quantity})
	}

	m.metrics.IncOperation("add", "success")
	return m.commitLocked(ctx, sessionID, next)
}

// UpdateQuantity sets the line quantity for a product already in the
// cart. Zero or negative removes the line.
func (m *Manager) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.entriesLocked(ctx, sessionID)

	if quantity <= 0 {
		return m.removeLocked(ctx, sessionID, entries, productID, "update")
	}

	idx := -1
	for i, entry := range entries {
		if entry.Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.metrics.IncOperation("update", "rejected")
		return summarize(entries), pkgerrors.New(pkgerrors.CodeEntryNotFound, "product not in cart").
			WithDetails(map[string]any{"product_id": productID.String()})
	}

	if err := validation.ValidateQuantity(quantity, entries[idx].Product.Stock, m.maxPerItem); err != nil {
		m.metrics.IncOperation("update", "rejected")
		return summarize(entries), err
	}

	next := append([]types.CartEntry(nil), entries...)
	next[idx].Quantity = quantity

	m.metrics.IncOperation("update", "success")
	return m.commitLocked(ctx, sessionID, next)
}

// RemoveItem drops the product's line from the cart. Removing a
// product that is not present is a no-op.
func (m *Manager) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.entriesLocked(ctx, sessionID)
	return m.removeLocked(ctx, sessionID, entries, productID, "remove")
}

// Clear empties the cart and drops its snapshot.
func (m *Manager) Clear(ctx context.Context, sessionID string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.carts[sessionID] = nil
	m.loaded[sessionID] = true

	if err := m.snaps.Clear(ctx, sessionID); err != nil {
		m.logg.Error(ctx, "clearing cart snapshot", err)
	}
	m.metrics.IncOperation("clear", "success")
	m.notifyLocked(sessionID, nil)
	return summarize(nil), nil
}

func (m *Manager) removeLocked(ctx context.Context, sessionID string, entries []types.CartEntry, productID uuid.UUID, operation string) (Summary, error) {
	next := make([]types.CartEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Product.ID != productID {
			next = append(next, entry)
		}
	}
	if len(next) == len(entries) {
		m.metrics.IncOperation(operation, "noop")
		return summarize(entries), nil
	}

	m.metrics.IncOperation(operation, "success")
	return m.commitLocked(ctx, sessionID, next)
}

// entriesLocked returns the session's entries, restoring them from the
// snapshot store on first access. A corrupt snapshot is dropped and
// the session starts empty.
func (m *Manager) entriesLocked(ctx context.Context, sessionID string) []types.CartEntry {
	if m.loaded[sessionID] {
		return m.carts[sessionID]
	}
	m.loaded[sessionID] = true

	data, err := m.snaps.Load(ctx, sessionID)
	if err != nil {
		m.logg.Error(m.logg.WithCartSession(ctx, sessionID), "loading cart snapshot", err)
		return nil
	}
	if data == nil {
		return nil
	}

	entries, ok := unmarshalEntries(data)
	if !ok {
		m.logg.Warn(m.logg.WithCartSession(ctx, sessionID), "discarding corrupt cart snapshot")
		if err := m.snaps.Clear(ctx, sessionID); err != nil {
			m.logg.Error(ctx, "clearing corrupt cart snapshot", err)
		}
		return nil
	}
	m.carts[sessionID] = entries
	return entries
}

// commitLocked installs the new entries, persists them best-effort and
// notifies listeners. A snapshot failure surfaces as a warning.
func (m *Manager) commitLocked(ctx context.Context, sessionID string, entries []types.CartEntry) (Summary, error) {
	m.carts[sessionID] = entries
	m.notifyLocked(sessionID, entries)

	data, err := marshalEntries(entries)
	if err == nil {
		err = m.snaps.Save(ctx, sessionID, data)
	}
	if err != nil {
		m.logg.Error(m.logg.WithCartSession(ctx, sessionID), "persisting cart snapshot", err)
		m.metrics.IncSnapshotWarning()
		return summarize(entries), pkgerrors.Wrap(pkgerrors.CodePersistenceWarning, err, "cart saved in memory only")
	}
	return summarize(entries), nil
}

func (m *Manager) notifyLocked(sessionID string, entries []types.CartEntry) {
	for _, fn := range m.listeners {
		fn(sessionID, append([]types.CartEntry(nil), entries...))
	}
}

func summarize(entries []types.CartEntry) Summary {
	out := make([]types.CartEntry, len(entries))
	copy(out, entries)
	return Summary{
		Entries:   out,
		Subtotal:  checkout.CartTotal(out),
		ItemCount: checkout.CartItemCount(out),
	}
}
