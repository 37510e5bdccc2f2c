package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/term"
)

// testEnv isolates config and state directories for one test.
type testEnv struct {
	configHome string
	stateHome  string
	project    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		configHome: t.TempDir(),
		stateHome:  t.TempDir(),
		project:    t.TempDir(),
	}
	t.Setenv("XDG_CONFIG_HOME", env.configHome)
	t.Setenv("XDG_STATE_HOME", env.stateHome)
	t.Setenv("NO_COLOR", "1")
	return env
}

// writeGlobalConfig writes the global config file for env.
func (env *testEnv) writeGlobalConfig(t *testing.T, content string) {
	t.Helper()
	dir := filepath.Join(env.configHome, "cmdguard")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// writeProjectConfig writes .cmdguard.yaml in the project directory.
func (env *testEnv) writeProjectConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(env.project, ".cmdguard.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// resetFlags restores every package flag variable to its default, since
// cobra only assigns flags that appear on the command line.
func resetFlags() {
	debugFlag = false
	silentFlag = false
	checkProjectDir = ""
	checkJSON = false
	checkConfirm = false
	checkStdin = false
	checkJobs = runtime.GOMAXPROCS(0)
	configProjectDir = ""
	policyProjectDir = ""
	policyListLevel = ""
	for _, name := range []string{"help", "version"} {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
		}
	}
}

// executeCommand runs the root command with args and stdin, returning what
// it wrote to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	term.SetOutput(&stdout)
	term.SetErrOutput(&stderr)
	clog.Discard()
	t.Cleanup(func() {
		_ = clog.Close()
		clog.Reset()
		term.Reset()
	})

	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

// exitCodeOf returns the exit code main would use for err.
func exitCodeOf(err error) int {
	if err == nil {
		return ExitAllow
	}
	if exitErr, ok := err.(*ExitCodeError); ok {
		return exitErr.Code
	}
	return ExitError
}
