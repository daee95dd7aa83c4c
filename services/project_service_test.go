package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/reorder"
	"github.com/portfolyo/site/ws"
)

func seedProjects(ids ...int64) []models.Project {
	out := make([]models.Project, 0, len(ids))
	for i, id := range ids {
		out = append(out, models.Project{ID: id, Title: "p", Order: i, IsPublished: true})
	}
	return out
}

func newProjectFixture(t *testing.T) (*fakeBackend, *fakePublisher, ProjectService) {
	t.Helper()
	backend := newFakeBackend()
	backend.projects = seedProjects(1, 2, 3, 4)
	pub := newFakePublisher()
	svc := NewProjectService(backend, pub, time.Second, zap.NewNop())
	t.Cleanup(svc.CloseAll)
	return backend, pub, svc
}

var testAuthCtx = models.AuthContext{Token: "t", ExpiresAt: time.Now().Add(time.Hour)}

func TestProjectService_CompleteDragIsOptimistic(t *testing.T) {
	backend, pub, svc := newProjectFixture(t)

	view, err := svc.OpenEditor(context.Background(), "s1", testAuthCtx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, view.IDs)
	assert.Equal(t, reorder.Synced, view.Sync.Status)

	require.NoError(t, svc.BeginDrag("s1", 3))
	view, err = svc.CompleteDrag("s1", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2, 4}, view.IDs)

	require.Eventually(t, func() bool {
		st, err := svc.EditorState("s1")
		return err == nil && st.Sync.Status == reorder.Synced && len(backend.reorderCalls()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, [][]int64{{3, 1, 2, 4}}, backend.reorderCalls())

	var ops []string
	for _, ev := range pub.eventsFor("s1") {
		ops = append(ops, ev.Op)
	}
	assert.Contains(t, ops, ws.OpProjectsReorder)
	assert.Contains(t, ops, ws.OpSyncState)
	assert.Empty(t, pub.eventsFor("s2"))
}

func TestProjectService_FailedPersistKeepsOrder(t *testing.T) {
	backend, _, svc := newProjectFixture(t)
	backend.failing["reorder"] = true

	_, err := svc.OpenEditor(context.Background(), "s1", testAuthCtx)
	require.NoError(t, err)
	require.NoError(t, svc.BeginDrag("s1", 4))
	_, err = svc.CompleteDrag("s1", 4, 1)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		st, _ := svc.EditorState("s1")
		return st.Sync.IsFailed()
	}, 2*time.Second, 5*time.Millisecond)

	view, err := svc.EditorState("s1")
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 1, 2, 3}, view.IDs, "displayed order is not rolled back")

	backend.mu.Lock()
	backend.failing["reorder"] = false
	backend.mu.Unlock()

	_, err = svc.RetrySync("s1")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		st, _ := svc.EditorState("s1")
		return st.Sync.Status == reorder.Synced
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{4, 1, 2, 3}, backend.reorderCalls()[0])
}

func TestProjectService_BackgroundUnauthorizedEndsSession(t *testing.T) {
	f := newAuthFixture(t)
	f.backend.token = signedToken(t, f.now.Add(time.Hour))
	f.backend.projects = seedProjects(1, 2, 3)
	f.backend.failWith["reorder"] = fmt.Errorf("backend 401: %w", pkg.ErrUnauthorized)

	pub := newFakePublisher()
	svc := NewProjectService(f.backend, pub, time.Second, zap.NewNop())
	t.Cleanup(svc.CloseAll)

	f.svc.OnLogout(func(sessionID string) {
		svc.CloseEditor(sessionID)
		pub.DisconnectSession(sessionID)
	})
	svc.OnSessionRejected(func(sessionID string) {
		assert.NoError(t, f.svc.Logout(context.Background(), sessionID))
	})

	session, err := f.svc.Login(context.Background(), &models.LoginRequest{Email: "admin@example.com", Password: "pw"}, "tr")
	require.NoError(t, err)
	principal, err := f.svc.Authenticate(context.Background(), session.ID)
	require.NoError(t, err)

	_, err = svc.OpenEditor(context.Background(), session.ID, principal.Auth)
	require.NoError(t, err)
	require.NoError(t, svc.BeginDrag(session.ID, 3))
	_, err = svc.CompleteDrag(session.ID, 3, 1)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(pub.disconnects()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{session.ID}, pub.disconnects())

	_, err = svc.EditorState(session.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound, "editor closed with the session")
	_, err = f.svc.Authenticate(context.Background(), session.ID)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized, "session removed")

	var failed *reorder.SyncState
	for _, ev := range pub.eventsFor(session.ID) {
		if st, ok := ev.Data.(reorder.SyncState); ok && st.IsFailed() {
			failed = &st
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, reorder.ReasonUnauthorized, failed.Reason)
	assert.NotContains(t, failed.Reason, "backend 401")
}

func TestProjectService_BackgroundFailureKeepsSession(t *testing.T) {
	backend, pub, svc := newProjectFixture(t)
	backend.failing["reorder"] = true

	var rejected []string
	svc.OnSessionRejected(func(sessionID string) { rejected = append(rejected, sessionID) })

	_, err := svc.OpenEditor(context.Background(), "s1", testAuthCtx)
	require.NoError(t, err)
	_, err = svc.CompleteDrag("s1", 2, 1)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		st, _ := svc.EditorState("s1")
		return st.Sync.IsFailed()
	}, 2*time.Second, 5*time.Millisecond)

	svc.CloseAll()
	assert.Empty(t, rejected)
	assert.Empty(t, pub.disconnects())
}

func TestProjectService_IdentityDragDoesNotPersist(t *testing.T) {
	backend, _, svc := newProjectFixture(t)

	_, err := svc.OpenEditor(context.Background(), "s1", testAuthCtx)
	require.NoError(t, err)
	require.NoError(t, svc.BeginDrag("s1", 2))
	view, err := svc.CompleteDrag("s1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, view.IDs)
	assert.Equal(t, reorder.Synced, view.Sync.Status)
	assert.Empty(t, backend.reorderCalls())
}

func TestProjectService_EditorLifecycle(t *testing.T) {
	_, _, svc := newProjectFixture(t)

	_, err := svc.CompleteDrag("missing", 1, 2)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = svc.OpenEditor(context.Background(), "s1", testAuthCtx)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.BeginDrag("s1", 99), pkg.ErrBadRequest)

	svc.CloseEditor("s1")
	_, err = svc.EditorState("s1")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestProjectService_CreateValidates(t *testing.T) {
	backend, _, svc := newProjectFixture(t)

	_, err := svc.Create(context.Background(), testAuthCtx, &models.ProjectInput{Title: "  "})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
	assert.Len(t, backend.projects, 4, "backend not called on validation failure")

	p, err := svc.Create(context.Background(), testAuthCtx, &models.ProjectInput{Title: "New", Description: "Desc"})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Title)
}
