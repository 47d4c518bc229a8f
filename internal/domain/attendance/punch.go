package attendance

// PunchState is the lifecycle of the latest punch submission.
type PunchState string

const (
	PunchIdle      PunchState = "idle"
	PunchPending   PunchState = "pending"
	PunchConfirmed PunchState = "confirmed"
	PunchFailed    PunchState = "failed"
)

type PunchAction string

const (
	ActionPunchIn  PunchAction = "punch_in"
	ActionPunchOut PunchAction = "punch_out"
)

// PunchStatus tracks the punched-in flag shown to the user. The flag flips
// optimistically when a submission starts and falls back to the last
// confirmed value when it fails.
type PunchStatus struct {
	State       PunchState
	Action      PunchAction
	PunchedIn   bool
	PunchInTime string
	LastError   string

	confirmedIn   bool
	confirmedTime string
}

// Begin moves to pending and applies the optimistic flag.
func (p *PunchStatus) Begin(action PunchAction, clock string) error {
	if p.State == PunchPending {
		return ErrPunchInProgress
	}
	if p.State == "" {
		p.State = PunchIdle
	}
	p.confirmedIn = p.PunchedIn
	p.confirmedTime = p.PunchInTime

	p.State = PunchPending
	p.Action = action
	p.LastError = ""
	switch action {
	case ActionPunchIn:
		p.PunchedIn = true
		p.PunchInTime = clock
	case ActionPunchOut:
		p.PunchedIn = false
	}
	return nil
}

// Confirm records server acceptance of the pending submission.
func (p *PunchStatus) Confirm() {
	if p.State != PunchPending {
		return
	}
	p.State = PunchConfirmed
	p.confirmedIn = p.PunchedIn
	p.confirmedTime = p.PunchInTime
}

// Fail records rejection and reverts the optimistic flag.
func (p *PunchStatus) Fail(err error) {
	if p.State != PunchPending {
		return
	}
	p.State = PunchFailed
	p.PunchedIn = p.confirmedIn
	p.PunchInTime = p.confirmedTime
	if err != nil {
		p.LastError = err.Error()
	}
}

// Reconcile aligns the flag with the server's record for today. Pending
// submissions are left alone.
func (p *PunchStatus) Reconcile(today *Record) {
	if p.State == PunchPending {
		return
	}
	if today == nil {
		return
	}
	p.PunchedIn = today.IsOpen()
	if today.PunchIn != nil && *today.PunchIn != "" {
		p.PunchInTime = *today.PunchIn
	}
	p.confirmedIn = p.PunchedIn
	p.confirmedTime = p.PunchInTime
}

// Pending reports whether a submission is in flight.
func (p *PunchStatus) Pending() bool {
	return p.State == PunchPending
}
