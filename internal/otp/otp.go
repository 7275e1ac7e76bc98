package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL matches the lifetime of a delivered code; a code that is not
// verified in time simply expires server-side.
const TTL = 5 * time.Minute

var ErrInvalidCode = errors.New("invalid or expired code")

type Store struct {
	rdb *redis.Client
}

func NewStore(addr, password string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// GenerateCode creates a 6-digit code for the email, replacing any
// code issued earlier for the same address.
func (s *Store) GenerateCode(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	if err := s.rdb.Set(ctx, key(email), code, TTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify consumes the code for the email. GETDEL makes the consume
// atomic, so two concurrent attempts with the same code cannot both
// pass; a mismatched attempt burns the code and the user has to
// request a new one.
func (s *Store) Verify(ctx context.Context, email, code string) error {
	stored, err := s.rdb.GetDel(ctx, key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidCode
		}
		return err
	}

	if stored != code {
		return ErrInvalidCode
	}
	return nil
}

func key(email string) string {
	return "otp:" + email
}
