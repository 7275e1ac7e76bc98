package otp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func buildStore(tb testing.TB) (*Store, *miniredis.Miniredis) {
	tb.Helper()

	mr := miniredis.RunT(tb)
	store, err := NewStore(mr.Addr(), "")
	if err != nil {
		tb.Fatalf("connect otp store: %v", err)
	}
	tb.Cleanup(func() { store.Close() })
	return store, mr
}

func TestGenerateCodeShape(t *testing.T) {
	store, _ := buildStore(t)
	ctx := context.Background()

	code, err := store.GenerateCode(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code %q should be 6 digits", code)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Fatalf("code %q should be numeric", code)
		}
	}
}

func TestVerifyConsumesCode(t *testing.T) {
	store, _ := buildStore(t)
	ctx := context.Background()

	code, err := store.GenerateCode(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	if err := store.Verify(ctx, "a@example.com", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if err := store.Verify(ctx, "a@example.com", code); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("second verify = %v, want ErrInvalidCode", err)
	}
}

func TestVerifyWrongCodeBurnsCode(t *testing.T) {
	store, _ := buildStore(t)
	ctx := context.Background()

	code, err := store.GenerateCode(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	if err := store.Verify(ctx, "a@example.com", "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("wrong code = %v, want ErrInvalidCode", err)
	}
	// The failed attempt consumed the code; the real one is gone too.
	if err := store.Verify(ctx, "a@example.com", code); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("verify after burn = %v, want ErrInvalidCode", err)
	}
}

func TestVerifyUnknownEmail(t *testing.T) {
	store, _ := buildStore(t)

	err := store.Verify(context.Background(), "nobody@example.com", "123456")
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("verify = %v, want ErrInvalidCode", err)
	}
}

func TestCodeExpires(t *testing.T) {
	store, mr := buildStore(t)
	ctx := context.Background()

	code, err := store.GenerateCode(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	mr.FastForward(TTL + time.Second)

	if err := store.Verify(ctx, "a@example.com", code); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("verify after expiry = %v, want ErrInvalidCode", err)
	}
}

func TestConcurrentVerifySingleWinner(t *testing.T) {
	store, _ := buildStore(t)
	ctx := context.Background()

	code, err := store.GenerateCode(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Verify(ctx, "a@example.com", code)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInvalidCode):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("%d attempts succeeded, want exactly 1", succeeded)
	}
	if rejected != attempts-1 {
		t.Fatalf("%d attempts rejected, want %d", rejected, attempts-1)
	}
}
