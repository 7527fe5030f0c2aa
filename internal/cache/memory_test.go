package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-utils/pkg/models"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "cv-prefill-skills-talent-42", BuildKey("", models.KindSkills, "talent-42"))
	assert.Equal(t, "onboarding-prefill-certificates-t1", BuildKey("onboarding", models.KindCertificates, "t1"))
}

func TestMemoryStorePutPeekConsume(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	key := BuildKey("", models.KindSkills, "t1")

	staged := StagedSuggestions{
		Kind:     models.KindSkills,
		Provider: "claude",
		Payload:  []byte(`["Go","Redis"]`),
	}
	require.NoError(t, store.Put(ctx, key, staged))

	// Peek leaves the entry in place
	peeked, err := store.Peek(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, staged.Payload, peeked.Payload)

	again, err := store.Peek(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, staged.Payload, again.Payload)

	// Consume removes it
	consumed, err := store.Consume(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, models.KindSkills, consumed.Kind)

	_, err = store.Peek(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreConsumeIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	key := BuildKey("", models.KindCertificates, "t1")

	require.NoError(t, store.Put(ctx, key, StagedSuggestions{
		Kind:    models.KindCertificates,
		Payload: []byte(`[]`),
	}))

	const consumers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Consume(ctx, key); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Exactly one consumer wins; the rest see ErrNotFound
	assert.Equal(t, 1, winners)
}

func TestMemoryStoreDismiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	key := BuildKey("", models.KindJobRoles, "t1")

	require.NoError(t, store.Put(ctx, key, StagedSuggestions{Kind: models.KindJobRoles, Payload: []byte(`[]`)}))
	require.NoError(t, store.Dismiss(ctx, key))

	_, err := store.Consume(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	// Dismissing an absent key is not an error
	assert.NoError(t, store.Dismiss(ctx, key))
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)
	key := BuildKey("", models.KindSkills, "t1")

	require.NoError(t, store.Put(ctx, key, StagedSuggestions{Kind: models.KindSkills, Payload: []byte(`[]`)}))

	time.Sleep(25 * time.Millisecond)

	_, err := store.Peek(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}
