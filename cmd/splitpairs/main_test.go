package main

import (
	"errors"
	"testing"
)

func TestLowerPriorityFailureIsNotFatal(t *testing.T) {
	called := false
	// lowerPriority must swallow a setter failure (simulating a platform or
	// permission restriction) rather than aborting the process.
	lowerPriority(func(which, who, prio int) error {
		called = true
		return errors.New("operation not permitted")
	})
	if !called {
		t.Fatal("expected the injected setter to be invoked")
	}
}
