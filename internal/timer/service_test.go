package timer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/countdown"
	googlecalendar "github.com/momentumhq/momentum-lambda/internal/google_calendar"
)

type fakeRepo struct {
	timers   map[uuid.UUID]*Timer
	comments []*TimerComment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{timers: map[uuid.UUID]*Timer{}}
}

func (r *fakeRepo) Create(t *Timer) error {
	cp := *t
	r.timers[t.ID] = &cp
	return nil
}

func (r *fakeRepo) FindAllByUserID(userID uuid.UUID) ([]*Timer, error) {
	var out []*Timer
	for _, t := range r.timers {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByID(id uuid.UUID) (*Timer, error) {
	t, ok := r.timers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) FindActiveByUserID(userID uuid.UUID) (*Timer, error) {
	for _, t := range r.timers {
		if t.UserID == userID && t.Status == StatusActive {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Update(t *Timer) error {
	cp := *t
	r.timers[t.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateRemainingTime(id uuid.UUID, remaining int) error {
	if t, ok := r.timers[id]; ok {
		t.RemainingTime = remaining
	}
	return nil
}

func (r *fakeRepo) Delete(id uuid.UUID) error {
	delete(r.timers, id)
	return nil
}

func (r *fakeRepo) AddComment(c *TimerComment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeRepo) CountComments(timerID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.comments {
		if c.TimerID == timerID {
			n++
		}
	}
	return n, nil
}

type noopCalendar struct{}

func (noopCalendar) SyncTimer(ctx context.Context, userID uuid.UUID, t *googlecalendar.CalendarTimer) (string, error) {
	return "", nil
}

func (noopCalendar) RemoveTimer(ctx context.Context, userID uuid.UUID, eventID string) error {
	return nil
}

func testService(t *testing.T) (TimerService, *fakeRepo, *countdown.Manager, uuid.UUID, context.Context) {
	t.Helper()
	repo := newFakeRepo()
	// Long interval so no tick fires during the test.
	countdowns := countdown.NewManagerWithInterval(time.Hour)
	clk := clock.Fixed{T: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	svc := NewService(repo, countdowns, noopCalendar{}, clk)

	userID := uuid.New()
	ctx := auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: userID.String(), Role: "user"})
	return svc, repo, countdowns, userID, ctx
}

func TestCreateTimer_ValidatesInput(t *testing.T) {
	svc, _, _, _, ctx := testService(t)

	_, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "", Duration: 60})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateTimer(ctx, CreateTimerDTO{Title: "focus", Duration: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateTimer_SecondActiveRejected(t *testing.T) {
	svc, _, _, _, ctx := testService(t)

	first, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "deep work", Duration: 1500})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, first.Status)

	_, err = svc.CreateTimer(ctx, CreateTimerDTO{Title: "another", Duration: 600})
	assert.ErrorIs(t, err, ErrTimerAlreadyRunning)

	// A paused timer can always be created alongside an active one.
	paused, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "later", Duration: 600, StartPaused: true})
	require.NoError(t, err)
	assert.Equal(t, StatusPaused, paused.Status)
}

func TestStartTimer_RejectsWhenAnotherActive(t *testing.T) {
	svc, _, _, _, ctx := testService(t)

	_, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "running", Duration: 1500})
	require.NoError(t, err)

	paused, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "waiting", Duration: 600, StartPaused: true})
	require.NoError(t, err)

	_, err = svc.StartTimer(ctx, paused.ID.String())
	assert.ErrorIs(t, err, ErrTimerAlreadyRunning)
}

func TestPauseThenStart(t *testing.T) {
	svc, _, countdowns, _, ctx := testService(t)

	created, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "focus", Duration: 1500})
	require.NoError(t, err)
	assert.True(t, countdowns.Running(created.ID))

	paused, err := svc.PauseTimer(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusPaused, paused.Status)
	assert.False(t, countdowns.Running(created.ID))

	restarted, err := svc.StartTimer(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusActive, restarted.Status)
	assert.True(t, countdowns.Running(created.ID))
}

func TestCompleteTimer_Idempotent(t *testing.T) {
	svc, repo, countdowns, _, ctx := testService(t)

	created, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "focus", Duration: 1500})
	require.NoError(t, err)

	done, err := svc.CompleteTimer(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)
	assert.Equal(t, 0, done.RemainingTime)
	require.NotNil(t, done.CompletedAt)
	assert.False(t, countdowns.Running(created.ID))

	firstCompletedAt := *done.CompletedAt

	again, err := svc.CompleteTimer(ctx, created.ID.String())
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, firstCompletedAt, *again.CompletedAt)

	stored, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
}

func TestCompletedTimerCannotRestart(t *testing.T) {
	svc, _, _, _, ctx := testService(t)

	created, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "focus", Duration: 1500, StartPaused: true})
	require.NoError(t, err)

	_, err = svc.CompleteTimer(ctx, created.ID.String())
	require.NoError(t, err)

	_, err = svc.StartTimer(ctx, created.ID.String())
	assert.ErrorIs(t, err, ErrTimerCompleted)

	_, err = svc.PauseTimer(ctx, created.ID.String())
	assert.ErrorIs(t, err, ErrTimerCompleted)
}

func TestCrossUserAccessHiddenAsNotFound(t *testing.T) {
	svc, _, _, _, ctx := testService(t)

	created, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "mine", Duration: 600, StartPaused: true})
	require.NoError(t, err)

	otherCtx := auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: uuid.NewString(), Role: "user"})

	_, err = svc.FindByID(otherCtx, created.ID.String())
	assert.ErrorIs(t, err, ErrTimerNotFound)

	_, err = svc.StartTimer(otherCtx, created.ID.String())
	assert.ErrorIs(t, err, ErrTimerNotFound)

	err = svc.DeleteByID(otherCtx, created.ID.String())
	assert.ErrorIs(t, err, ErrTimerNotFound)
}

func TestAddComment_OrdersSequentially(t *testing.T) {
	svc, repo, _, _, ctx := testService(t)

	created, err := svc.CreateTimer(ctx, CreateTimerDTO{Title: "focus", Duration: 600, StartPaused: true})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, created.ID.String(), AddCommentDTO{Content: "first"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, created.ID.String(), AddCommentDTO{Content: "second"})
	require.NoError(t, err)

	require.Len(t, repo.comments, 2)
	assert.Equal(t, 0, repo.comments[0].OrderIndex)
	assert.Equal(t, 1, repo.comments[1].OrderIndex)
}
