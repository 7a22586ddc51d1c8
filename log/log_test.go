package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir("") })
	return tmp
}

func TestResolveDirFlag(t *testing.T) {
	got, err := ResolveDir("/tmp/mylog")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/mylog" {
		t.Errorf("got %q, want /tmp/mylog", got)
	}
}

func TestResolveDirFlagRelative(t *testing.T) {
	got, err := ResolveDir("logs")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("MIXKEY_LOG_PATH", "/tmp/mixkey-env-log")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/mixkey-env-log" {
		t.Errorf("got %q, want /tmp/mixkey-env-log", got)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("MIXKEY_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Error("default dir is empty")
	}
	if !strings.Contains(got, "mixkey") {
		t.Errorf("default dir %q does not contain app name", got)
	}
}

func TestInitWritesDiagnostics(t *testing.T) {
	tmp := setupLogDir(t)
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Info("hello")
	Trigger("music", "up", "-10.0 dB")
	Close()

	data, err := os.ReadFile(filepath.Join(tmp, "controller_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "hello") {
		t.Errorf("diagnostics missing info line: %s", out)
	}
	if !strings.Contains(out, "trigger") || !strings.Contains(out, "music") {
		t.Errorf("diagnostics missing trigger event: %s", out)
	}
}

func TestLoggingBeforeInitIsSafe(t *testing.T) {
	Close()
	Info("dropped")
	Errorf("also dropped: %d", 1)
}
