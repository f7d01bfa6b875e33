package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hostsuite/hostsuite/cmd"
	errUtils "github.com/hostsuite/hostsuite/errors"
	log "github.com/hostsuite/hostsuite/pkg/logger"
)

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		// POSIX exit code is 128 + signal number.
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	log.Default().SetReportTimestamp(false)

	// errUtils.OsExit allows test interception.
	errUtils.OsExit(run())
}

// run executes the application and returns an exit code.
func run() int {
	err := cmd.Execute()
	if err != nil {
		formatted := errUtils.Format(err, errUtils.DefaultFormatterConfig())
		os.Stderr.WriteString(formatted + "\n")

		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}
	return 0
}
