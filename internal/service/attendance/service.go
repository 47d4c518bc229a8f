package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/hrapi"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/validator"
)

const EventAttendance = "attendance"

type resolverSource interface {
	Resolver(sessionID string) session.Resolver
}

type publisher interface {
	Publish(sessionID string, event sse.Event)
}

// viewState is the attendance view of one session. Fetches are numbered;
// a fetch result is applied only when no later fetch has been applied.
type viewState struct {
	mu          sync.Mutex
	records     []attendance.Record
	punch       attendance.PunchStatus
	lastPunchIn string
	issued      uint64
	applied     uint64

	// guarded by AttendanceServiceImpl.mu
	touched time.Time
}

type AttendanceServiceImpl struct {
	client   attendance.Client
	sessions resolverSource
	events   publisher
	loc      *time.Location
	now      func() time.Time

	mu    sync.Mutex
	views map[string]*viewState
}

func NewAttendanceService(client attendance.Client, sessions resolverSource, events publisher, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		client:   client,
		sessions: sessions,
		events:   events,
		loc:      loc,
		now:      time.Now,
		views:    make(map[string]*viewState),
	}
}

func (s *AttendanceServiceImpl) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *AttendanceServiceImpl) today() string {
	return s.clock().Format(attendance.DateLayout)
}

func (s *AttendanceServiceImpl) state(sessionID string) *viewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.views[sessionID]
	if !ok {
		st = &viewState{}
		s.views[sessionID] = st
	}
	st.touched = s.now()
	return st
}

// credentials resolves the signed-in user and bearer token of a session.
func (s *AttendanceServiceImpl) credentials(ctx context.Context, sessionID string) (*user.User, string, bool) {
	resolver := s.sessions.Resolver(sessionID)

	u := resolver.GetCurrentUser(ctx)
	if u == nil || u.ID.String() == "" {
		return nil, "", false
	}
	token, ok := resolver.GetAuthToken(ctx)
	if !ok || token == "" {
		return nil, "", false
	}
	return u, token, true
}

// viewLocked builds the view; st.mu must be held.
func (s *AttendanceServiceImpl) viewLocked(st *viewState) attendance.ViewResponse {
	return attendance.NewViewResponse(s.today(), st.records, st.punch)
}

func (s *AttendanceServiceImpl) publish(sessionID string, view attendance.ViewResponse) {
	if s.events == nil {
		return
	}
	s.events.Publish(sessionID, sse.Event{Event: EventAttendance, Data: view})
}

// View implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) View(_ context.Context, sessionID string) attendance.ViewResponse {
	st := s.state(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return s.viewLocked(st)
}

// Load implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Load(ctx context.Context, sessionID string) (attendance.ViewResponse, error) {
	u, token, ok := s.credentials(ctx, sessionID)
	if !ok {
		slog.Warn("User not authenticated, attendance not loaded", "session_id", sessionID)
		return s.View(ctx, sessionID), nil
	}
	return s.fetch(ctx, sessionID, u, token), nil
}

// fetch replaces the record list with the upstream one. Failures keep the
// previous list.
func (s *AttendanceServiceImpl) fetch(ctx context.Context, sessionID string, u *user.User, token string) attendance.ViewResponse {
	st := s.state(sessionID)

	st.mu.Lock()
	st.issued++
	seq := st.issued
	st.mu.Unlock()

	records, err := s.client.ListRecords(ctx, token, u.ID.String())

	st.mu.Lock()
	defer st.mu.Unlock()

	if err != nil {
		slog.Error("Failed to fetch attendance", "session_id", sessionID, "employee_id", u.ID.String(), "error", err)
		return s.viewLocked(st)
	}
	if seq <= st.applied {
		slog.Debug("Discarding stale attendance fetch", "session_id", sessionID, "seq", seq, "applied", st.applied)
		return s.viewLocked(st)
	}

	st.applied = seq
	st.records = records
	today := attendance.Today(records, s.today())
	st.punch.Reconcile(today)
	if today != nil && today.PunchIn != nil && *today.PunchIn != "" {
		st.lastPunchIn = *today.PunchIn
	}

	view := s.viewLocked(st)
	s.publish(sessionID, view)
	return view
}

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, sessionID string) (attendance.ViewResponse, error) {
	u, token, ok := s.credentials(ctx, sessionID)
	if !ok {
		return s.View(ctx, sessionID), attendance.ErrNotAuthenticated
	}

	now := s.clock()
	req := attendance.PunchRequest{
		Date:    now.Format(attendance.DateLayout),
		PunchIn: now.Format(attendance.ClockLayout),
		Status:  attendance.StatusPresent,
	}

	st := s.state(sessionID)
	st.mu.Lock()
	if err := st.punch.Begin(attendance.ActionPunchIn, req.PunchIn); err != nil {
		view := s.viewLocked(st)
		st.mu.Unlock()
		return view, err
	}
	st.lastPunchIn = req.PunchIn
	pending := s.viewLocked(st)
	st.mu.Unlock()
	s.publish(sessionID, pending)

	err := s.submit(ctx, token, req)
	return s.settle(ctx, sessionID, st, u, token, err), nil
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, sessionID string) (attendance.ViewResponse, error) {
	u, token, ok := s.credentials(ctx, sessionID)
	if !ok {
		return s.View(ctx, sessionID), attendance.ErrNotAuthenticated
	}

	now := s.clock()
	punchOut := now.Format(attendance.ClockLayout)
	req := attendance.PunchRequest{
		Date:     now.Format(attendance.DateLayout),
		PunchOut: &punchOut,
		Status:   attendance.StatusPresent,
	}

	st := s.state(sessionID)
	st.mu.Lock()
	if err := st.punch.Begin(attendance.ActionPunchOut, ""); err != nil {
		view := s.viewLocked(st)
		st.mu.Unlock()
		return view, err
	}
	req.PunchIn = punchInFor(st, req.Date)
	pending := s.viewLocked(st)
	st.mu.Unlock()
	s.publish(sessionID, pending)

	err := s.submit(ctx, token, req)
	return s.settle(ctx, sessionID, st, u, token, err), nil
}

// submit validates the outgoing body before handing it to the upstream API.
func (s *AttendanceServiceImpl) submit(ctx context.Context, token string, req attendance.PunchRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid punch request: %w", err)
	}
	return s.client.SubmitPunch(ctx, token, req)
}

// punchInFor picks the punch_in sent with a punch-out: today's record first,
// then the last punch-in captured here, then attendance.DefaultPunchIn.
func punchInFor(st *viewState, day string) string {
	if today := attendance.Today(st.records, day); today != nil && today.PunchIn != nil && *today.PunchIn != "" {
		return *today.PunchIn
	}
	if st.lastPunchIn != "" {
		return st.lastPunchIn
	}
	return attendance.DefaultPunchIn
}

// settle records the outcome of a submitted punch. A rejected punch is
// reported through the view's punch state; an accepted one triggers a
// refetch.
func (s *AttendanceServiceImpl) settle(ctx context.Context, sessionID string, st *viewState, u *user.User, token string, err error) attendance.ViewResponse {
	st.mu.Lock()
	if err != nil {
		action := st.punch.Action
		st.punch.Fail(upstreamReason(err))
		view := s.viewLocked(st)
		st.mu.Unlock()

		slog.Error("Punch failed", "session_id", sessionID, "action", action, "error", err)
		s.publish(sessionID, view)
		return view
	}
	st.punch.Confirm()
	st.mu.Unlock()

	return s.fetch(ctx, sessionID, u, token)
}

// upstreamReason keeps the server message of an API rejection and hides
// transport details.
func upstreamReason(err error) error {
	var apiErr *hrapi.APIError
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message)
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return attendance.ErrUpstreamFailed
}

// Forget implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, sessionID)
}

// Sweep implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, st := range s.views {
		if !st.touched.Before(cutoff) {
			continue
		}
		st.mu.Lock()
		pending := st.punch.Pending()
		st.mu.Unlock()
		if !pending {
			delete(s.views, id)
			dropped++
		}
	}
	return dropped
}
