package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const planChannel = "meal_plan_events"

// PostgresFeed is a Feed that crosses process boundaries via Postgres
// LISTEN/NOTIFY. Another device writing to the same user's plan reaches us
// through here; local fan-out still goes through the embedded Broker.
type PostgresFeed struct {
	broker   *Broker
	listener *pq.Listener
	db       notifier
	logger   *zap.Logger
}

// notifier is the slice of *sql.DB we need to emit NOTIFY.
type notifier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// NewPostgresFeed connects a listener on the plan channel. Events published
// locally are sent as NOTIFY payloads so every node (including this one)
// receives them through the listener; the listener deduplicates nothing,
// self-echo handling belongs to the plan sync layer.
func NewPostgresFeed(dsn string, db notifier, logger *zap.Logger) (*PostgresFeed, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &PostgresFeed{
		broker: NewBroker(),
		db:     db,
		logger: logger,
	}

	f.listener = pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("plan feed listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	if err := f.listener.Listen(planChannel); err != nil {
		f.listener.Close()
		return nil, err
	}

	go f.run()
	return f, nil
}

// Publish emits the event as a NOTIFY payload. Delivery back to local
// subscribers happens when the notification arrives on the listener.
func (f *PostgresFeed) Publish(ev PlanEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		f.logger.Error("marshal plan event", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := f.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", planChannel, string(payload)); err != nil {
		f.logger.Warn("pg_notify failed, delivering locally", zap.Error(err))
		f.broker.Publish(ev)
	}
}

// Subscribe registers a consumer for one user's plan events.
func (f *PostgresFeed) Subscribe(userID uuid.UUID) (<-chan PlanEvent, func()) {
	return f.broker.Subscribe(userID)
}

// Close tears down the Postgres listener.
func (f *PostgresFeed) Close() error {
	return f.listener.Close()
}

func (f *PostgresFeed) run() {
	for n := range f.listener.Notify {
		if n == nil {
			// Reconnect marker: subscribers may have missed events. The
			// client-facing refresh path reconciles; nothing to replay here.
			continue
		}
		var ev PlanEvent
		if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
			f.logger.Warn("bad plan event payload", zap.Error(err))
			continue
		}
		f.broker.Publish(ev)
	}
}
