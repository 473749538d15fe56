package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimisticActionCommitSuccess(t *testing.T) {
	rolledBack := false

	action := OptimisticAction[string]{
		Apply:    func() string { return "previous" },
		Commit:   func() error { return nil },
		Rollback: func(string) { rolledBack = true },
	}

	require.NoError(t, action.Run())
	assert.False(t, rolledBack)
}

func TestOptimisticActionRollsBackOnCommitFailure(t *testing.T) {
	var restored string

	action := OptimisticAction[string]{
		Apply:    func() string { return "previous" },
		Commit:   func() error { return fmt.Errorf("write failed") },
		Rollback: func(snapshot string) { restored = snapshot },
	}

	err := action.Run()
	require.Error(t, err)
	assert.EqualError(t, err, "write failed")
	assert.Equal(t, "previous", restored, "rollback receives the snapshot apply returned")
}

func TestOptimisticActionRequiresAllHooks(t *testing.T) {
	action := OptimisticAction[string]{
		Apply:  func() string { return "" },
		Commit: func() error { return nil },
	}

	assert.Error(t, action.Run())
}
