package services

import (
	"testing"
	"time"

	"github.com/muaishaq001/nacos-hub/internal/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func nopFlows(notices flow.Notifier) (*flow.Registration, *flow.Collaboration) {
	return flow.NewRegistration(&fakeStudentAPI{}, notices, nil, nil),
		flow.NewCollaboration(&fakeCollaboratorAPI{}, notices, nil, nil)
}

func TestSessionStore_GetCreatesOnce(t *testing.T) {
	s := NewSessionStore(time.Minute, time.Hour, nopFlows, nil)
	defer s.Close()

	a := s.Get("a")
	require.NotNil(t, a.Registration)
	require.NotNil(t, a.Collaboration)
	require.NotNil(t, a.Notices)

	assert.Same(t, a, s.Get("a"))
	assert.NotSame(t, a, s.Get("b"))
	assert.Equal(t, 2, s.Len())
}

func TestSessionStore_SweepDropsIdle(t *testing.T) {
	s := NewSessionStore(10*time.Minute, time.Hour, nopFlows, nil)
	defer s.Close()

	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Get("old")
	now = now.Add(8 * time.Minute)
	s.Get("fresh")
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	old := s.Get("old")
	assert.Equal(t, flow.StateDetails, old.Registration.Snapshot().State, "expired session starts over")
}

func TestSessionStore_JanitorRunsAndStops(t *testing.T) {
	s := NewSessionStore(time.Nanosecond, time.Millisecond, nopFlows, nil)
	s.Get("x")

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 2*time.Millisecond)
	s.Close()
	s.Close()
}
