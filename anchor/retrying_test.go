package anchor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-sh/tessera-core/retry"
)

type flakySink struct {
	failures int
	calls    int
	tx       []Transaction
}

func (s *flakySink) Submit(_ context.Context, tx Transaction) error {
	s.calls++
	s.tx = append(s.tx, tx)
	if s.calls <= s.failures {
		return errors.New("sink unavailable")
	}
	return nil
}

func TestRetryingSink_RecoversAfterTransientFailure(t *testing.T) {
	inner := &flakySink{failures: 1}
	sink := NewRetryingSink(inner, retry.WithBackOffOptions(
		retry.WithInitialInterval(time.Millisecond),
		retry.WithMaxElapsedTime(time.Second),
	))

	err := sink.Submit(context.Background(), Transaction{DocumentID: "doc-1", EventType: "document.deconstructed"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingSink_SwallowsExhaustedRetries(t *testing.T) {
	inner := &flakySink{failures: 1000}
	sink := NewRetryingSink(inner, retry.WithBackOffOptions(
		retry.WithInitialInterval(time.Millisecond),
		retry.WithMaxElapsedTime(20*time.Millisecond),
	))

	err := sink.Submit(context.Background(), Transaction{DocumentID: "doc-1", EventType: "document.destroyed"})
	assert.NoError(t, err)
}
