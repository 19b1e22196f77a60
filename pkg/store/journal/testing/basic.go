package testing

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twnkl2713/moodflow/pkg/store/journal"
)

// RunBasicTests exercises ReadAll and WriteAll.
func (suite *BackendTestSuite) RunBasicTests(t *testing.T) {
	t.Run("ReadAll_NotExist", suite.testReadAllNotExist)
	t.Run("WriteAll_ThenReadAll", suite.testWriteThenRead)
	t.Run("WriteAll_Replaces", suite.testWriteReplaces)
	t.Run("WriteAll_Empty", suite.testWriteEmpty)
	t.Run("WriteAll_Large", suite.testWriteLarge)
	t.Run("WriteAll_CallerMayReuseBuffer", suite.testBufferReuse)
	t.Run("WriteAll_Concurrent", suite.testConcurrentWrites)
}

// RunLifecycleTests exercises Healthcheck, Name and context handling.
func (suite *BackendTestSuite) RunLifecycleTests(t *testing.T) {
	t.Run("Healthcheck", suite.testHealthcheck)
	t.Run("Name", suite.testName)
	t.Run("CancelledContext", suite.testCancelledContext)
}

// ============================================================================
// ReadAll / WriteAll
// ============================================================================

func (suite *BackendTestSuite) testReadAllNotExist(t *testing.T) {
	b := suite.newBackend(t)

	_, err := b.ReadAll(testContext())
	assert.ErrorIs(t, err, journal.ErrNotExist)
}

func (suite *BackendTestSuite) testWriteThenRead(t *testing.T) {
	b := suite.newBackend(t)
	data := []byte(`[{"date":"2024-01-01","text":"hi","mood":"Neutral"}]`)

	require.NoError(t, b.WriteAll(testContext(), data))

	got, err := b.ReadAll(testContext())
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func (suite *BackendTestSuite) testWriteReplaces(t *testing.T) {
	b := suite.newBackend(t)

	require.NoError(t, b.WriteAll(testContext(), []byte("a much longer first version")))
	require.NoError(t, b.WriteAll(testContext(), []byte("short")))

	got, err := b.ReadAll(testContext())
	require.NoError(t, err)
	assert.Equal(t, []byte("short"), got)
}

func (suite *BackendTestSuite) testWriteEmpty(t *testing.T) {
	b := suite.newBackend(t)

	require.NoError(t, b.WriteAll(testContext(), []byte{}))

	got, err := b.ReadAll(testContext())
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func (suite *BackendTestSuite) testWriteLarge(t *testing.T) {
	b := suite.newBackend(t)
	data := bytes.Repeat([]byte("0123456789abcdef"), 64*1024) // 1MB

	require.NoError(t, b.WriteAll(testContext(), data))

	got, err := b.ReadAll(testContext())
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func (suite *BackendTestSuite) testBufferReuse(t *testing.T) {
	b := suite.newBackend(t)
	buf := []byte("original")

	require.NoError(t, b.WriteAll(testContext(), buf))
	copy(buf, "mutated!")

	got, err := b.ReadAll(testContext())
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func (suite *BackendTestSuite) testConcurrentWrites(t *testing.T) {
	b := suite.newBackend(t)

	candidates := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		payload := bytes.Repeat([]byte{byte('a' + i)}, 4096)
		candidates[string(payload)] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, b.WriteAll(testContext(), payload))
		}()
	}
	wg.Wait()

	// Last writer wins, but the result is always one whole payload.
	got, err := b.ReadAll(testContext())
	require.NoError(t, err)
	assert.True(t, candidates[string(got)], "read back a torn or unknown payload")
}

// ============================================================================
// Lifecycle
// ============================================================================

func (suite *BackendTestSuite) testHealthcheck(t *testing.T) {
	b := suite.newBackend(t)
	assert.NoError(t, b.Healthcheck(testContext()))
}

func (suite *BackendTestSuite) testName(t *testing.T) {
	b := suite.newBackend(t)
	assert.NotEmpty(t, b.Name())
}

func (suite *BackendTestSuite) testCancelledContext(t *testing.T) {
	b := suite.newBackend(t)
	ctx, cancel := context.WithCancel(testContext())
	cancel()

	assert.ErrorIs(t, b.WriteAll(ctx, []byte("x")), context.Canceled)
	_, err := b.ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
