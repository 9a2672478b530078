// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/mverhaert/xbrld/internal/logging"
	"github.com/mverhaert/xbrld/internal/staging"
)

// ArelleConfig configures the Arelle CLI invocation.
type ArelleConfig struct {
	// Command is the Arelle executable ("arelleCmdLine" on PATH by default).
	Command string

	// CacheDir is the pre-populated taxonomy cache root.
	CacheDir string

	// Offline disables all network access during validation. Default true;
	// there is no network fallback for cache misses either way.
	Offline bool

	// Timeout bounds a single engine run. Zero means no engine-level bound
	// beyond the caller's context.
	Timeout time.Duration

	// Plugins is an optional Arelle plugin spec passed through verbatim.
	Plugins string
}

// Arelle runs the Arelle command-line validator as a subprocess.
//
// Arelle holds global state internally and is not safe for concurrent
// invocation against a shared cache; the validator service serializes calls,
// this type only performs a single run.
type Arelle struct {
	cfg    ArelleConfig
	stager *staging.Stager
	log    zerolog.Logger
}

// NewArelle creates an Arelle engine adapter. The stager provides the
// scratch location for the engine's log file.
func NewArelle(cfg ArelleConfig, stager *staging.Stager) *Arelle {
	if cfg.Command == "" {
		cfg.Command = "arelleCmdLine"
	}
	return &Arelle{
		cfg:    cfg,
		stager: stager,
		log:    logging.WithComponent("engine"),
	}
}

// Validate runs the engine against filePath and returns the parsed log.
//
// The engine writes diagnostics to a staged log file which is removed on
// every exit path. A non-zero exit status with a readable log is treated as
// validation findings, not an engine failure; only a run that produces no
// log at all is an error.
func (a *Arelle) Validate(ctx context.Context, filePath string) ([]LogRecord, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	logPath, cleanupLog := a.stager.StagePath(".log")
	defer cleanupLog()

	args := []string{
		"--file", filePath,
		"--validate",
		"--logFile", logPath,
		"--logLevel", "debug",
		"--cacheDirectory", a.cfg.CacheDir,
	}
	if a.cfg.Offline {
		args = append(args, "--internetConnectivity", "offline")
	}
	if a.cfg.Plugins != "" {
		args = append(args, "--plugins", a.cfg.Plugins)
	}

	cmd := exec.CommandContext(ctx, a.cfg.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	a.log.Debug().
		Str("file", filePath).
		Dur("elapsed", time.Since(start)).
		Bool("offline", a.cfg.Offline).
		Msg("engine run finished")

	content, readErr := os.ReadFile(logPath)
	if readErr != nil {
		if runErr != nil {
			return nil, fmt.Errorf("engine: %s failed: %w (stderr: %s)",
				a.cfg.Command, runErr, truncate(stderr.String(), 500))
		}
		return nil, fmt.Errorf("engine: read log %s: %w", logPath, readErr)
	}

	records := ParseLog(content)
	if runErr != nil && len(records) == 0 {
		// The process died before producing any diagnostics.
		return nil, fmt.Errorf("engine: %s produced no log: %w (stderr: %s)",
			a.cfg.Command, runErr, truncate(stderr.String(), 500))
	}
	return records, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
