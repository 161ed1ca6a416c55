package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamearcade/matchserv/internal/model"
	"github.com/gamearcade/matchserv/internal/store"
)

// accountsKey holds the full account set as a JSON array. The directory
// always saves the complete set, so a single value keeps registration order
// without index bookkeeping.
const accountsKey = "matchserv:accounts"

// Store is a Redis-backed implementation of the account store
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ store.AccountStore = (*Store)(nil)

func (s *Store) Load(ctx context.Context) ([]model.Account, error) {
	data, err := s.client.Get(ctx, accountsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var accounts []model.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Store) Save(ctx context.Context, accounts []model.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, accountsKey, data, 0).Err()
}
