package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybercentry/waitlist-service/internal/models"
)

func TestStorage_InsertSignup(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	verify := NewTestVerification(storage)

	t.Run("успешная вставка со всеми полями", func(t *testing.T) {
		signup := GetTestSignupData()

		id, err := storage.InsertSignup(context.Background(), signup)
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		verify.VerifySignupCount(t, signup.Email, 1)
		verify.VerifySignupFields(t, signup.Email, signup.Fid, signup.DisplayName, signup.Plan)
	})

	t.Run("вставка только с email сохраняет NULL в остальных полях", func(t *testing.T) {
		signup := models.Signup{Email: "minimal@example.com"}

		id, err := storage.InsertSignup(context.Background(), signup)
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		verify.VerifySignupCount(t, signup.Email, 1)
		verify.VerifySignupFields(t, signup.Email, nil, nil, nil)
	})

	t.Run("повторный email возвращает ErrEmailExists", func(t *testing.T) {
		signup := models.Signup{Email: "dup@example.com"}

		_, err := storage.InsertSignup(context.Background(), signup)
		require.NoError(t, err)

		_, err = storage.InsertSignup(context.Background(), signup)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmailExists)

		verify.VerifySignupCount(t, signup.Email, 1)
	})

	t.Run("отменённый контекст не доходит до базы", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.InsertSignup(ctx, models.Signup{Email: "cancelled@example.com"})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)

		verify.VerifySignupCount(t, "cancelled@example.com", 0)
	})
}

func TestStorage_InsertSignup_Race(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	// Две конкурентные вставки одного email: ровно одна должна пройти,
	// вторая — получить конфликт от уникального индекса.
	const email = "race@example.com"
	const workers = 2

	var wg sync.WaitGroup
	results := make(chan error, workers)
	start := make(chan struct{})

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := storage.InsertSignup(context.Background(), models.Signup{Email: email})
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var okCount, conflictCount int
	for err := range results {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, ErrEmailExists):
			conflictCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, conflictCount)

	NewTestVerification(storage).VerifySignupCount(t, email, 1)
}

func TestStorage_NotConfigured(t *testing.T) {
	storage := New("")

	_, err := storage.InsertSignup(context.Background(), models.Signup{Email: "a@b.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = storage.Conn()
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.NoError(t, storage.Close())
}
