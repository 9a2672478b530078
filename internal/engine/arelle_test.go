// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/mverhaert/xbrld/internal/staging"
)

// fakeEngineScript writes a shell script standing in for the Arelle CLI.
// The script locates its --logFile argument and writes the given log body,
// then exits with the given status.
func fakeEngineScript(t *testing.T, logBody string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine script requires a POSIX shell")
	}

	script := `#!/bin/sh
log=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "--logFile" ]; then log="$arg"; fi
  prev="$arg"
done
if [ -n "$log" ] && [ -n "` + strings.ReplaceAll(logBody, "\n", `\n`) + `" ]; then
  printf '` + strings.ReplaceAll(logBody, "\n", `\n`) + `\n' > "$log"
fi
exit ` + itoa(exitCode) + `
`
	path := filepath.Join(t.TempDir(), "fake-arelle.sh")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake engine: %v", err)
	}
	return path
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	return string(rune('0' + n))
}

func TestArelle_ValidateParsesLog(t *testing.T) {
	dir := t.TempDir()
	cmd := fakeEngineScript(t, "[xbrl.4.2:schemaRef] missing schemaRef - doc.xml, line 2", 0)

	a := NewArelle(ArelleConfig{
		Command:  cmd,
		CacheDir: dir,
		Offline:  true,
	}, staging.NewStager(dir))

	records, err := a.Validate(context.Background(), filepath.Join(dir, "doc.xml"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Code != "xbrl.4.2:schemaRef" {
		t.Errorf("code = %q", records[0].Code)
	}
	if records[0].Level != LevelError {
		t.Errorf("level = %q", records[0].Level)
	}
}

func TestArelle_NonZeroExitWithLogIsNotAnError(t *testing.T) {
	// Validation findings may give a non-zero exit status; as long as the
	// log is readable those are findings, not an engine failure.
	dir := t.TempDir()
	cmd := fakeEngineScript(t, "[xmlSchema:syntax] bad element - doc.xml, line 1", 1)

	a := NewArelle(ArelleConfig{Command: cmd, CacheDir: dir, Offline: true}, staging.NewStager(dir))

	records, err := a.Validate(context.Background(), "doc.xml")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestArelle_CrashWithoutLogIsAnError(t *testing.T) {
	dir := t.TempDir()
	cmd := fakeEngineScript(t, "", 2)

	a := NewArelle(ArelleConfig{Command: cmd, CacheDir: dir, Offline: true}, staging.NewStager(dir))

	if _, err := a.Validate(context.Background(), "doc.xml"); err == nil {
		t.Error("expected error when engine exits non-zero with no log")
	}
}

func TestArelle_MissingBinary(t *testing.T) {
	dir := t.TempDir()
	a := NewArelle(ArelleConfig{
		Command:  filepath.Join(dir, "no-such-binary"),
		CacheDir: dir,
	}, staging.NewStager(dir))

	if _, err := a.Validate(context.Background(), "doc.xml"); err == nil {
		t.Error("expected error for missing engine binary")
	}
}

func TestArelle_LogCleanedUp(t *testing.T) {
	dir := t.TempDir()
	stageDir := t.TempDir()
	cmd := fakeEngineScript(t, "[info] done", 0)

	a := NewArelle(ArelleConfig{Command: cmd, CacheDir: dir, Offline: true}, staging.NewStager(stageDir))

	if _, err := a.Validate(context.Background(), "doc.xml"); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	leftover, err := os.ReadDir(stageDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("expected staging dir empty after run, found %d files", len(leftover))
	}
}

func TestArelle_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "slow.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nsleep 10\n"), 0o755); err != nil {
		t.Fatalf("write slow engine: %v", err)
	}

	a := NewArelle(ArelleConfig{
		Command:  path,
		CacheDir: dir,
		Timeout:  100 * time.Millisecond,
	}, staging.NewStager(dir))

	start := time.Now()
	_, err := a.Validate(context.Background(), "doc.xml")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestNewArelle_DefaultCommand(t *testing.T) {
	a := NewArelle(ArelleConfig{}, staging.NewStager(""))
	if a.cfg.Command != "arelleCmdLine" {
		t.Errorf("default command = %q, want arelleCmdLine", a.cfg.Command)
	}
}
