package credits

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"sermon-art-backend/internal/logging"
)

var ErrNoCredits = errors.New("no credits remaining")

// Balance mirrors a user_credits row.
type Balance struct {
	UserID           uuid.UUID `json:"user_id"`
	CreditsRemaining int       `json:"credits_remaining"`
	NextResetAt      time.Time `json:"next_reset_at"`
}

// BalanceStore reads the authoritative balance, creating the row on first read.
type BalanceStore interface {
	GetOrCreateCredits(ctx context.Context, userID uuid.UUID) (*Balance, error)
}

// Gate is a read-through cache of user balances. It is advisory: it keeps
// requests that would certainly be rejected from being sent, while the
// database decrement stays the source of truth.
type Gate struct {
	store  BalanceStore
	logger *slog.Logger

	mu       sync.RWMutex
	balances map[uuid.UUID]Balance
}

func NewGate(store BalanceStore, logger *slog.Logger) *Gate {
	return &Gate{
		store:    store,
		logger:   logging.OrDiscard(logger),
		balances: make(map[uuid.UUID]Balance),
	}
}

// CurrentBalance returns nil until the user's balance has been loaded.
func (g *Gate) CurrentBalance(userID uuid.UUID) *Balance {
	g.mu.RLock()
	defer g.mu.RUnlock()

	b, ok := g.balances[userID]
	if !ok {
		return nil
	}
	return &b
}

func (g *Gate) Loaded(userID uuid.UUID) bool {
	return g.CurrentBalance(userID) != nil
}

func (g *Gate) CanStartStage(userID uuid.UUID) bool {
	b := g.CurrentBalance(userID)
	return b != nil && b.CreditsRemaining > 0
}

// Refresh reloads the balance from the store.
func (g *Gate) Refresh(ctx context.Context, userID uuid.UUID) (*Balance, error) {
	if g.store == nil {
		return nil, errors.New("credit store not available")
	}
	b, err := g.store.GetOrCreateCredits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh credits: %w", err)
	}
	g.Apply(*b)
	return b, nil
}

// Apply stores a balance pushed by the backend. Last write wins.
func (g *Gate) Apply(b Balance) {
	g.mu.Lock()
	g.balances[b.UserID] = b
	g.mu.Unlock()

	g.logger.Debug("credit balance updated", "user_id", b.UserID, "credits_remaining", b.CreditsRemaining)
}

// Forget drops a cached balance, e.g. when the user signs out.
func (g *Gate) Forget(userID uuid.UUID) {
	g.mu.Lock()
	delete(g.balances, userID)
	g.mu.Unlock()
}

// Run applies balances from a push feed until ctx is done or the feed closes.
func (g *Gate) Run(ctx context.Context, updates <-chan Balance) {
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-updates:
			if !ok {
				return
			}
			g.Apply(b)
		}
	}
}

// UserGate binds a Gate to one user.
type UserGate struct {
	gate   *Gate
	userID uuid.UUID
}

func (g *Gate) ForUser(userID uuid.UUID) UserGate {
	return UserGate{gate: g, userID: userID}
}

func (u UserGate) CanStartStage() bool {
	return u.gate.CanStartStage(u.userID)
}
