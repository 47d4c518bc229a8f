package attendance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunchStatus_ConfirmKeepsOptimisticFlag(t *testing.T) {
	var p PunchStatus

	require.NoError(t, p.Begin(ActionPunchIn, "09:03"))
	assert.Equal(t, PunchPending, p.State)
	assert.True(t, p.PunchedIn)

	p.Confirm()
	assert.Equal(t, PunchConfirmed, p.State)
	assert.True(t, p.PunchedIn)
	assert.Equal(t, "09:03", p.PunchInTime)
}

func TestPunchStatus_FailRevertsToLastConfirmed(t *testing.T) {
	var p PunchStatus
	require.NoError(t, p.Begin(ActionPunchIn, "09:03"))
	p.Confirm()

	require.NoError(t, p.Begin(ActionPunchOut, ""))
	assert.False(t, p.PunchedIn)

	p.Fail(errors.New("Already punched out"))
	assert.Equal(t, PunchFailed, p.State)
	assert.True(t, p.PunchedIn)
	assert.Equal(t, "09:03", p.PunchInTime)
	assert.Equal(t, "Already punched out", p.LastError)
}

func TestPunchStatus_FailedPunchInClearsTime(t *testing.T) {
	var p PunchStatus
	require.NoError(t, p.Begin(ActionPunchIn, "09:03"))
	p.Fail(errors.New("boom"))

	assert.False(t, p.PunchedIn)
	assert.Empty(t, p.PunchInTime)
}

func TestPunchStatus_RejectsWhilePending(t *testing.T) {
	var p PunchStatus
	require.NoError(t, p.Begin(ActionPunchIn, "09:03"))

	err := p.Begin(ActionPunchOut, "")
	assert.ErrorIs(t, err, ErrPunchInProgress)
	assert.Equal(t, ActionPunchIn, p.Action)
}

func TestPunchStatus_RetryAfterFailureClearsError(t *testing.T) {
	var p PunchStatus
	require.NoError(t, p.Begin(ActionPunchIn, "09:03"))
	p.Fail(errors.New("boom"))

	require.NoError(t, p.Begin(ActionPunchIn, "09:04"))
	assert.Empty(t, p.LastError)
}

func TestPunchStatus_Reconcile(t *testing.T) {
	t.Run("open record punches in", func(t *testing.T) {
		var p PunchStatus
		p.Reconcile(&Record{Date: "2025-06-10", PunchIn: strPtr("08:45")})
		assert.True(t, p.PunchedIn)
		assert.Equal(t, "08:45", p.PunchInTime)
	})

	t.Run("closed record punches out", func(t *testing.T) {
		p := PunchStatus{PunchedIn: true}
		p.Reconcile(&Record{Date: "2025-06-10", PunchIn: strPtr("08:45"), PunchOut: strPtr("17:00")})
		assert.False(t, p.PunchedIn)
	})

	t.Run("pending is left alone", func(t *testing.T) {
		var p PunchStatus
		require.NoError(t, p.Begin(ActionPunchIn, "09:00"))
		p.Reconcile(&Record{Date: "2025-06-10", PunchIn: strPtr("08:45"), PunchOut: strPtr("17:00")})
		assert.True(t, p.PunchedIn)
		assert.Equal(t, "09:00", p.PunchInTime)
	})

	t.Run("no record keeps the flag", func(t *testing.T) {
		p := PunchStatus{PunchedIn: true}
		p.Reconcile(nil)
		assert.True(t, p.PunchedIn)
	})
}
