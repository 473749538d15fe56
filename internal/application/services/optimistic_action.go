// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import "fmt"

// OptimisticAction applies a local state change before its commit has been
// confirmed. Rollback is required, not optional: a failed commit must restore
// the snapshot Apply returned, so the caller never loses user state.
type OptimisticAction[S any] struct {
	Apply    func() S
	Commit   func() error
	Rollback func(snapshot S)
}

// Run applies the optimistic change, attempts the commit, and rolls back on
// failure. The commit error is returned so the caller can surface a toast.
func (a OptimisticAction[S]) Run() error {
	if a.Apply == nil || a.Commit == nil || a.Rollback == nil {
		return fmt.Errorf("optimistic action requires apply, commit, and rollback")
	}

	snapshot := a.Apply()
	if err := a.Commit(); err != nil {
		a.Rollback(snapshot)
		return err
	}
	return nil
}
