package redis

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rpswager/rpswager/internal/ledger"
	"github.com/rpswager/rpswager/internal/model"
)

// maxTxRetries bounds optimistic-lock retries when a watched balance key is
// modified concurrently
const maxTxRetries = 10

// transferRefTTL keeps applied-transfer markers alive past the match
// retention window so a late retry still dedupes
const transferRefTTL = 14 * 24 * time.Hour

// Ledger is a Redis-backed implementation of the custody ledger.
// Balances are integer values; moves between keys use WATCH so a concurrent
// spend of the same balance cannot double-withdraw.
type Ledger struct {
	client *redis.Client
}

// Config holds Redis connection settings for the ledger
type Config struct {
	URL          string
	PoolSize     int
	MinIdleConns int
}

// DefaultConfig returns sensible defaults for ledger configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// New creates a new Redis ledger instance
func New(cfg Config) (*Ledger, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Ledger{client: client}, nil
}

// NewWithClient creates a Redis ledger with an existing client
// (shared with storage, or for testing)
func NewWithClient(client *redis.Client) *Ledger {
	return &Ledger{client: client}
}

// Close closes the Redis connection
func (l *Ledger) Close() error {
	return l.client.Close()
}

// Ensure Ledger implements the interface
var _ ledger.Ledger = (*Ledger)(nil)

func (l *Ledger) Deposit(ctx context.Context, from model.PlayerID, into model.EscrowHandle, amount uint64) error {
	return l.move(ctx, accountKey(from), escrowKey(into), amount, "")
}

func (l *Ledger) Transfer(ctx context.Context, from model.EscrowHandle, to model.PlayerID, amount uint64, ref string) error {
	return l.move(ctx, escrowKey(from), accountKey(to), amount, ref)
}

func (l *Ledger) Credit(ctx context.Context, to model.PlayerID, amount uint64) error {
	if amount > math.MaxInt64 {
		return ledger.ErrAmountTooLarge
	}
	return l.client.IncrBy(ctx, accountKey(to), int64(amount)).Err()
}

func (l *Ledger) Balance(ctx context.Context, of model.PlayerID) (uint64, error) {
	return l.balanceOf(ctx, accountKey(of))
}

func (l *Ledger) EscrowBalance(ctx context.Context, handle model.EscrowHandle) (uint64, error) {
	return l.balanceOf(ctx, escrowKey(handle))
}

func (l *Ledger) balanceOf(ctx context.Context, key string) (uint64, error) {
	balance, err := l.client.Get(ctx, key).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

// move debits srcKey and credits dstKey atomically. The source balance is
// checked under WATCH; if another transaction touches it the whole attempt
// is retried. A non-empty ref marks the move as applied in the same
// transaction, so a replay under the same ref is a no-op.
func (l *Ledger) move(ctx context.Context, srcKey, dstKey string, amount uint64, ref string) error {
	if amount > math.MaxInt64 {
		return ledger.ErrAmountTooLarge
	}

	watchKeys := []string{srcKey}
	if ref != "" {
		watchKeys = append(watchKeys, transferKey(ref))
	}

	txn := func(tx *redis.Tx) error {
		if ref != "" {
			applied, err := tx.Exists(ctx, transferKey(ref)).Result()
			if err != nil {
				return err
			}
			if applied > 0 {
				return nil
			}
		}

		balance, err := tx.Get(ctx, srcKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if balance < amount {
			return ledger.ErrInsufficientFunds
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.DecrBy(ctx, srcKey, int64(amount))
			pipe.IncrBy(ctx, dstKey, int64(amount))
			if ref != "" {
				pipe.Set(ctx, transferKey(ref), 1, transferRefTTL)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := l.client.Watch(ctx, txn, watchKeys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return redis.TxFailedErr
}
