package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// managePIDFile writes the process ID to path and returns a cleanup func.
// With lock set, an existing file belonging to a live process aborts
// startup so only one instance runs.
func managePIDFile(path string, lock bool) (func(), error) {
	if lock {
		if data, err := os.ReadFile(path); err == nil {
			pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
			if err == nil && pid > 0 && processAlive(pid) {
				return nil, fmt.Errorf("another instance is running (pid %d)", pid)
			}
			// Stale file, take it over
			os.Remove(path)
		}
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write PID file: %w", err)
	}

	return func() {
		os.Remove(path)
	}, nil
}

// processAlive probes a PID with signal 0
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
