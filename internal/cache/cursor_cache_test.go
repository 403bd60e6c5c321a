package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/cache"
	"github.com/kristi-balla/leakchef/internal/repository/mock"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "2341:10efd8f2", cache.Key(2341, "10efd8f2"))
}

func TestTakeOnEmptyCacheMisses(t *testing.T) {
	c := cache.New(zap.NewNop(), 10, time.Minute)

	cur, ok := c.Take(2341, "10efd8f2")
	assert.False(t, ok)
	assert.Nil(t, cur)
}

func TestPutThenTakeReturnsSameCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := cache.New(zap.NewNop(), 10, time.Minute)
	cur := mock.NewMockIdentityCursor(ctrl)

	c.Put(2341, "10efd8f2", cur)
	require.Equal(t, 1, c.Len())

	got, ok := c.Take(2341, "10efd8f2")
	require.True(t, ok)
	assert.Same(t, cur, got)

	// Take removed the entry, so a second Take misses.
	_, ok = c.Take(2341, "10efd8f2")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestPutClosesDisplacedCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := cache.New(zap.NewNop(), 10, time.Minute)

	old := mock.NewMockIdentityCursor(ctrl)
	old.EXPECT().Close(gomock.Any()).Return(nil)
	c.Put(2341, "10efd8f2", old)

	replacement := mock.NewMockIdentityCursor(ctrl)
	c.Put(2341, "10efd8f2", replacement)

	got, ok := c.Take(2341, "10efd8f2")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestSizePressureClosesOldestCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := cache.New(zap.NewNop(), 1, time.Minute)

	oldest := mock.NewMockIdentityCursor(ctrl)
	oldest.EXPECT().Close(gomock.Any()).Return(nil)
	c.Put(2341, "10efd8f2", oldest)

	c.Put(6111, "886a6149", mock.NewMockIdentityCursor(ctrl))
	assert.Equal(t, 1, c.Len())

	_, ok := c.Take(2341, "10efd8f2")
	assert.False(t, ok)

	_, ok = c.Take(6111, "886a6149")
	assert.True(t, ok)
}

func TestExpiredCursorIsClosedAndMissed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := cache.New(zap.NewNop(), 10, 50*time.Millisecond)

	cur := mock.NewMockIdentityCursor(ctrl)
	cur.EXPECT().Close(gomock.Any()).Return(nil)
	c.Put(2341, "10efd8f2", cur)

	time.Sleep(250 * time.Millisecond)

	_, ok := c.Take(2341, "10efd8f2")
	assert.False(t, ok)
}

func TestReinsertRestartsLifetime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := cache.New(zap.NewNop(), 10, 300*time.Millisecond)

	cur := mock.NewMockIdentityCursor(ctrl)
	c.Put(2341, "10efd8f2", cur)

	time.Sleep(200 * time.Millisecond)
	got, ok := c.Take(2341, "10efd8f2")
	require.True(t, ok)
	c.Put(2341, "10efd8f2", got)

	// Past the original deadline, alive because Put restarted the TTL.
	time.Sleep(200 * time.Millisecond)
	_, ok = c.Take(2341, "10efd8f2")
	assert.True(t, ok)
}

func TestCloseClosesEveryParkedCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := cache.New(zap.NewNop(), 10, time.Minute)

	for i, leak := range []string{"leak-a", "leak-b", "leak-c"} {
		cur := mock.NewMockIdentityCursor(ctrl)
		cur.EXPECT().Close(gomock.Any()).Return(nil)
		c.Put(int32(i), leak, cur)
	}

	c.Close()
	assert.Zero(t, c.Len())
}
