package statsutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngvozdiev/netsim/statsutil"
)

func TestTimeoutEnforcer_TimesOutAfterBaseTimeout(t *testing.T) {
	e := statsutil.NewTimeoutEnforcer[string](statsutil.TimeoutPolicy{
		BaseTimeout: 10 * time.Second,
	})

	e.Update("a", 0)
	assert.Empty(t, e.Timeout(5*time.Second))
	assert.True(t, e.IsCurrentKey("a"))

	eligible := e.Timeout(11 * time.Second)
	assert.Equal(t, []string{"a"}, eligible)
	assert.False(t, e.IsCurrentKey("a"))
}

func TestTimeoutEnforcer_PenaltyDelaysTimeout(t *testing.T) {
	e := statsutil.NewTimeoutEnforcer[string](statsutil.TimeoutPolicy{
		BaseTimeout:            10 * time.Second,
		TimeoutPenalty:         20 * time.Second,
		TimeoutPenaltyLookback: 30 * time.Second,
	})

	e.Update("a", 0)
	// Without the penalty this would be eligible (11s > 10s base).
	assert.Empty(t, e.Timeout(11 * time.Second))
}

func TestTimeoutEnforcer_ClearRemovesAllKeys(t *testing.T) {
	e := statsutil.NewTimeoutEnforcer[string](statsutil.TimeoutPolicy{BaseTimeout: time.Second})
	e.Update("a", 0)
	e.Clear()
	assert.Empty(t, e.AllCurrentKeys())
}
