package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	t.Run("starts closed", func(t *testing.T) {
		b := New("vault")
		assert.Equal(t, "vault", b.Name())
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, "closed", b.State().String())
	})

	t.Run("opens on the threshold failure", func(t *testing.T) {
		b := New("vault", WithFailureThreshold(2))

		fallback, change := b.RecordFailure()
		assert.False(t, fallback)
		assert.False(t, change.Opened)

		fallback, change = b.RecordFailure()
		assert.True(t, fallback)
		assert.True(t, change.Opened)
		assert.True(t, b.IsOpen())

		fallback, change = b.RecordFailure()
		assert.True(t, fallback)
		assert.False(t, change.Opened)
	})

	t.Run("success while closed resets the failure streak", func(t *testing.T) {
		b := New("vault", WithFailureThreshold(2))
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordFailure()
		assert.False(t, b.IsOpen())
	})

	t.Run("closes after enough consecutive successes", func(t *testing.T) {
		b := New("vault", WithFailureThreshold(1), WithSuccessThreshold(2))
		b.RecordFailure()

		primary, change := b.RecordSuccess()
		assert.False(t, primary)
		assert.False(t, change.Closed)

		b.RecordFailure()
		b.RecordSuccess()
		assert.True(t, b.IsOpen())

		primary, change = b.RecordSuccess()
		assert.True(t, primary)
		assert.True(t, change.Closed)
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("state names", func(t *testing.T) {
		b := New("vault", WithFailureThreshold(1))
		assert.Equal(t, "closed", b.State().String())
		b.RecordFailure()
		assert.Equal(t, "open", b.State().String())
	})
}
