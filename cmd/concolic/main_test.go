package main

import (
	"bufio"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRun(t *testing.T, args []string) (stdout string, code int) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	code = run(args, w, w)
	require.NoError(t, w.Close())

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stdout += scanner.Text() + "\n"
	}
	return stdout, code
}

func TestRunVersionPrintsVersionAndExitsOK(t *testing.T) {
	out, code := captureRun(t, []string{"version"})
	assert.Equal(t, exitOK, code)
	assert.Equal(t, version+"\n", out)
}

func TestRunUnknownCommandIsInvalidConfig(t *testing.T) {
	_, code := captureRun(t, []string{"bogus"})
	assert.Equal(t, exitInvalidConfig, code)
}

func TestRunNoArgsIsInvalidConfig(t *testing.T) {
	_, code := captureRun(t, nil)
	assert.Equal(t, exitInvalidConfig, code)
}

func TestRunUnknownScenarioIsInvalidConfig(t *testing.T) {
	_, code := captureRun(t, []string{"run", "no-such-scenario"})
	assert.Equal(t, exitInvalidConfig, code)
}

func TestRunSingleBranchProducesTwoPaths(t *testing.T) {
	out, code := captureRun(t, []string{"run", "single-branch"})
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"terminated_reason"`)
	assert.Contains(t, out, `"x > 10"`)
}

func TestRunFiveCaseSelectVisitsEveryCase(t *testing.T) {
	out, code := captureRun(t, []string{"run", "five-case-select"})
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"terminated_reason": "exhausted"`)
	for _, want := range []string{"choice == 0", "choice == 1", "choice == 2", "choice == 3", "choice == 4"} {
		assert.Contains(t, out, want)
	}
}
