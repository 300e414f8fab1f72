package follows

import (
	"context"
	"sync"
	"testing"

	"Yatube/api/events"
	"Yatube/api/models"
	"Yatube/api/utils/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *Manager, *events.Recorder, *models.User, *models.User) {
	t.Helper()
	return setupWith(t, testdb.Open(t))
}

func setupWith(t *testing.T, db *gorm.DB) (*gorm.DB, *Manager, *events.Recorder, *models.User, *models.User) {
	t.Helper()
	rec := &events.Recorder{}

	users := make([]*models.User, 0, 2)
	for _, name := range []string{"reader", "writer"} {
		u := &models.User{Username: name, Email: name + "@example.com", Password: "password123"}
		saved, err := u.SaveUser(db)
		require.NoError(t, err)
		users = append(users, saved)
	}
	return db, NewManager(db, rec), rec, users[0], users[1]
}

func edgeCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&n).Error)
	return n
}

func TestFollowIsIdempotent(t *testing.T) {
	db, m, rec, reader, writer := setup(t)
	ctx := context.Background()

	out, err := m.Follow(ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	assert.Equal(t, Created, out)
	assert.True(t, out.Changed())

	out, err = m.Follow(ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	assert.Equal(t, AlreadyFollowing, out)
	assert.False(t, out.Changed())

	assert.EqualValues(t, 1, edgeCount(t, db))
	assert.Equal(t, []string{events.FollowCreated}, rec.Types())

	following, err := m.IsFollowing(ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	assert.True(t, following)

	reverse, err := m.IsFollowing(ctx, writer.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestSelfFollowIsRejected(t *testing.T) {
	db, m, rec, reader, _ := setup(t)

	out, err := m.Follow(context.Background(), reader.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, SelfFollowRejected, out)
	assert.Zero(t, edgeCount(t, db))
	assert.Empty(t, rec.Events())
}

func TestFollowUnknownAuthor(t *testing.T) {
	_, m, _, reader, _ := setup(t)

	_, err := m.Follow(context.Background(), reader.ID, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = m.Follow(context.Background(), 0, reader.ID)
	assert.ErrorIs(t, err, ErrInvalidEdge)
}

func TestUnfollow(t *testing.T) {
	db, m, rec, reader, writer := setup(t)
	ctx := context.Background()

	out, err := m.Unfollow(ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	assert.Equal(t, NotFollowing, out)

	_, err = m.Follow(ctx, reader.ID, writer.ID)
	require.NoError(t, err)

	out, err = m.Unfollow(ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	assert.Equal(t, Removed, out)
	assert.Zero(t, edgeCount(t, db))
	assert.Equal(t, []string{events.FollowCreated, events.FollowRemoved}, rec.Types())
}

func TestConcurrentFollowsOnSeparateConnectionsLeaveOneEdge(t *testing.T) {
	db, m, _, reader, writer := setupWith(t, testdb.OpenPool(t, 8))

	var wg sync.WaitGroup
	start := make(chan struct{})
	outcomes := make(chan Outcome, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			out, err := m.Follow(context.Background(), reader.ID, writer.ID)
			assert.NoError(t, err)
			outcomes <- out
		}()
	}
	close(start)
	wg.Wait()
	close(outcomes)

	created := 0
	for out := range outcomes {
		if out == Created {
			created++
		}
	}
	assert.Equal(t, 1, created)
	assert.EqualValues(t, 1, edgeCount(t, db))
}

func TestCounts(t *testing.T) {
	db, m, _, reader, writer := setup(t)
	ctx := context.Background()
	third := &models.User{Username: "third", Email: "third@example.com", Password: "password123"}
	_, err := third.SaveUser(db)
	require.NoError(t, err)

	_, err = m.Follow(ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	_, err = m.Follow(ctx, third.ID, writer.ID)
	require.NoError(t, err)
	_, err = m.Follow(ctx, writer.ID, reader.ID)
	require.NoError(t, err)

	followers, err := m.FollowersCount(ctx, writer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, followers)

	following, err := m.FollowingCount(ctx, writer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)

	assert.Equal(t, "already_following", AlreadyFollowing.String())
}
