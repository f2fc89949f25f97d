package main

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// execBootloader replaces this process with the update program
type execBootloader struct {
	program string
	logger  flogger
}

func newExecBootloader(program string) *execBootloader {
	return &execBootloader{program: program, logger: &ThreadLogger{name: "Boot"}}
}

func (eb *execBootloader) enter() error {
	if eb.program == "" {
		return errors.New("no boot program configured")
	}
	eb.logger.Printf("Running %s", eb.program)
	err := syscall.Exec(eb.program, []string{eb.program}, os.Environ())
	// only here if the exec failed
	return errors.Wrapf(err, "could not run '%s'", eb.program)
}

type testBootloader struct {
	entered int
	fail    error
}

func (tb *testBootloader) enter() error {
	tb.entered++
	return tb.fail
}
