package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"svns/internal/cli"
	"svns/internal/commands"
	"svns/internal/config"
	"svns/internal/exitcode"
	"svns/internal/kv"
	"svns/internal/service"
	"svns/internal/store"
	"svns/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// memOpener hands out the same in-memory store on every dispatch.
func memOpener(mem *kv.Memory) cli.StoreOpener {
	return func(ctx context.Context, cfg *config.Config) (kv.Store, error) {
		return mem, nil
	}
}

type harness struct {
	t          *testing.T
	dir        string
	mem        *kv.Memory
	svc        *testutil.FakeService
	dispatcher *cli.Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{config.EnvSignalLimit, config.EnvDatabase, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
	h := &harness{
		t:   t,
		dir: t.TempDir(),
		mem: kv.NewMemory(),
		svc: testutil.NewFakeService(),
	}
	h.dispatcher = cli.NewDispatcher(commands.DefaultRegistry, testFactory(h.svc), memOpener(h.mem))
	return h
}

// run dispatches args with --config pointing at the harness directory.
func (h *harness) run(args ...string) (stdout, stderr string, code int) {
	h.t.Helper()
	if len(args) > 0 {
		args = append([]string{args[0], "--config", h.dir}, args[1:]...)
	}
	var outBuf, errBuf bytes.Buffer
	code = h.dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	h := newHarness(t)
	_, stderr, code := h.run("unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	h := newHarness(t)

	var stdout, stderr bytes.Buffer
	code := h.dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	h := newHarness(t)
	stdout, stderr, code := h.run("help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	h := newHarness(t)
	stdout, stderr, code := h.run("version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "svns 0.1.0\n" {
		t.Errorf("expected 'svns 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	h := newHarness(t)
	_, stderr, code := h.run("help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	h := newHarness(t)
	_, stderr, code := h.run("add", "--list")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -list\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	h := newHarness(t)
	t.Setenv("XDG_CONFIG_HOME", h.dir)

	var outBuf, errBuf bytes.Buffer
	code := h.dispatcher.Run(context.Background(), nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "no tasks found\n" {
		t.Errorf("expected 'no tasks found\\n', got %q", outBuf.String())
	}
}

func TestDispatcher_StateSurvivesAcrossRuns(t *testing.T) {
	h := newHarness(t)

	if _, stderr, code := h.run("add", "Write", "report"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	if _, stderr, code := h.run("add", "--list", "noise", "Read email"); code != exitcode.Success {
		t.Fatalf("add noise failed: %d %q", code, stderr)
	}
	if _, stderr, code := h.run("done", "s1"); code != exitcode.Success {
		t.Fatalf("done failed: %d %q", code, stderr)
	}

	stdout, _, code := h.run("counts")
	if code != exitcode.Success {
		t.Fatalf("counts failed: %d", code)
	}
	if stdout != "signal: 0/5\nnoise: 1\ndone: 1\n" {
		t.Errorf("unexpected counts %q", stdout)
	}

	raw, found, _ := h.mem.Get(context.Background(), store.TasksKey)
	if !found || !strings.Contains(raw, `"text":"Read email"`) {
		t.Errorf("expected persisted tasks, got %q", raw)
	}
}

func TestDispatcher_QuietFlag(t *testing.T) {
	h := newHarness(t)
	stdout, stderr, code := h.run("add", "--quiet", "Write report")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
}

func TestDispatcher_SignalLimitFromConfigFile(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(filepath.Join(h.dir, config.ConfigFile), []byte("signal_limit: 1\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, stderr, code := h.run("add", "-l", "s", "Write report"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	_, stderr, code := h.run("add", "-l", "s", "Call bank")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: signal capped at 1, finish or move something first\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_SignalLimitFromEnv(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvSignalLimit, "2")

	stdout, _, code := h.run("counts")
	if code != exitcode.Success {
		t.Fatalf("counts failed: %d", code)
	}
	if !strings.HasPrefix(stdout, "signal: 0/2\n") {
		t.Errorf("expected limit 2, got %q", stdout)
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(filepath.Join(h.dir, config.ConfigFile), []byte("signal_limit: [\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, stderr, code := h.run("list")
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: config error: invalid config.yaml") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_StoreOpenError(t *testing.T) {
	h := newHarness(t)
	opener := func(ctx context.Context, cfg *config.Config) (kv.Store, error) {
		return nil, errors.New("database is locked")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(h.svc), opener)

	var outBuf, errBuf bytes.Buffer
	code := d.Run(context.Background(), []string{"list", "--config", h.dir}, &outBuf, &errBuf)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	expected := "error: storage error: database is locked\n"
	if errBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, errBuf.String())
	}
}

func TestDispatcher_NotLoggedIn(t *testing.T) {
	h := newHarness(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, cli.ErrNotLoggedIn
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory, memOpener(h.mem))

	var outBuf, errBuf bytes.Buffer
	code := d.Run(context.Background(), []string{"push", "--config", h.dir}, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: auth error: not logged in (run: svns login)\n"
	if errBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, errBuf.String())
	}
}

func TestDispatcher_BackendFactoryError(t *testing.T) {
	h := newHarness(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("connection refused")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory, memOpener(h.mem))

	var outBuf, errBuf bytes.Buffer
	code := d.Run(context.Background(), []string{"push", "--config", h.dir}, &outBuf, &errBuf)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
}

func TestDispatcher_PushUsesFactory(t *testing.T) {
	h := newHarness(t)
	if _, stderr, code := h.run("add", "Write report"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}

	stdout, stderr, code := h.run("push")
	if code != exitcode.Success {
		t.Fatalf("push failed: %d %q", code, stderr)
	}
	if stdout != "pushed: 1 created, 0 completed\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	h := newHarness(t)
	_, stderr, code := h.run("list", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "dispatch") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}
