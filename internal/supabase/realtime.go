package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/logging"
)

// CreditsChannel is the NOTIFY channel written by the user_credits trigger.
const CreditsChannel = "user_credits_changed"

// CreditListener turns user_credits change notifications into balance
// updates for the credit gate.
type CreditListener struct {
	listener *pq.Listener
	logger   *slog.Logger
}

func NewCreditListener(connectionString string, logger *slog.Logger) (*CreditListener, error) {
	logger = logging.OrDiscard(logger)

	listener := pq.NewListener(connectionString, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("Credits listener event", "event", int(ev), "error", err)
		}
	})
	if err := listener.Listen(CreditsChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", CreditsChannel, err)
	}

	return &CreditListener{listener: listener, logger: logger}, nil
}

// Feed starts forwarding balances until ctx is done. The returned channel is
// closed when forwarding stops.
func (l *CreditListener) Feed(ctx context.Context) <-chan credits.Balance {
	out := make(chan credits.Balance)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-l.listener.Notify:
				// nil after a reconnect; balances are re-read on the next refresh
				if n == nil {
					continue
				}
				b, err := ParseCreditNotification(n.Extra)
				if err != nil {
					l.logger.Warn("Ignoring credits notification", "error", err)
					continue
				}
				select {
				case out <- b:
				case <-ctx.Done():
					return
				}
			case <-time.After(90 * time.Second):
				go l.listener.Ping()
			}
		}
	}()

	return out
}

func (l *CreditListener) Close() error {
	return l.listener.Close()
}

func ParseCreditNotification(payload string) (credits.Balance, error) {
	var b credits.Balance
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		return credits.Balance{}, fmt.Errorf("failed to decode credits payload: %w", err)
	}
	if b.UserID == uuid.Nil {
		return credits.Balance{}, errors.New("credits payload missing user_id")
	}
	return b, nil
}
