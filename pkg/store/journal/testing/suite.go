package testing

import (
	"context"
	"testing"

	"github.com/twnkl2713/moodflow/pkg/store/journal"
)

// BackendTestSuite is a conformance suite for journal.Backend
// implementations. It tests the interface contract only, so every backend
// (filesystem, memory, badger, s3) runs the same cases.
//
// Usage:
//
//	func TestMyBackend(t *testing.T) {
//	    suite := &testing.BackendTestSuite{
//	        NewBackend: func(t *testing.T) journal.Backend {
//	            return mybackend.New()
//	        },
//	    }
//	    suite.Run(t)
//	}
type BackendTestSuite struct {
	// NewBackend creates a fresh, empty backend for each test. Resources can
	// be released with t.Cleanup; the suite calls Close itself.
	NewBackend func(t *testing.T) journal.Backend
}

// Run executes all tests in the suite.
func (suite *BackendTestSuite) Run(t *testing.T) {
	t.Run("BasicOperations", suite.RunBasicTests)
	t.Run("Lifecycle", suite.RunLifecycleTests)
}

func (suite *BackendTestSuite) newBackend(t *testing.T) journal.Backend {
	t.Helper()
	b := suite.NewBackend(t)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// testContext returns a standard test context.
func testContext() context.Context {
	return context.Background()
}
