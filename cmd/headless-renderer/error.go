package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/k1LoW/errors"

	"headless/pkg/config"
	"headless/pkg/logger"
	"headless/version"
)

const recentLogLines = 100

type errorData struct {
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

// execute runs the root command and returns the process exit status.
func execute(args []string) int {
	recent := logger.NewRecent(recentLogLines)
	cmd := newRootCmd(recent)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	dumpError(err, recent)
	return 1
}

// dumpError writes recent logs and stack traces to error.json in the state directory.
func dumpError(err error, recent *logger.Recent) {
	var latestLogs []any
	for _, line := range recent.Lines() {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			latestLogs = append(latestLogs, line)
		} else {
			latestLogs = append(latestLogs, m)
		}
	}
	d := &errorData{
		LatestLogs:  latestLogs,
		StackTraces: kerrors.StackTraces(err),
		CreatedAt:   time.Now(),
		Version:     version.Version,
		Revision:    version.Revision,
	}
	b, err := json.Marshal(d)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	dir, err := config.StateHomePath()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to write error.json: %v\n", err)
		return
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", dir, err)
		return
	}
	dumpPath := filepath.Join(dir, "error.json")
	if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to write error.json to %s: %v\n", dumpPath, err)
	}
}
