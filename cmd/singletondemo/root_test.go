package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestShow(t *testing.T) {
	out := run(t, "show", "--log-level", "off")
	assert.Contains(t, out, `oncecell  id=`)
	assert.Contains(t, out, `data="Singleton3 instance"`)
	assert.Contains(t, out, `data=""`)
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestRace(t *testing.T) {
	path := writeConfig(t, `policies = ["mutex", "oncecell"]
release_at_exit = false
`)
	out := run(t, "race", "--config", path, "--threads", "3", "--log-level", "off")

	assert.Equal(t, 3, strings.Count(out, "set mutex data: Thread"))
	assert.Regexp(t, `Final mutex data: Thread \d data`, out)
	assert.Equal(t, 3, strings.Count(out, "set oncecell data: Singleton3 instance"))
	assert.Contains(t, out, "Final oncecell data: Singleton3 instance")
}

func TestPolicies(t *testing.T) {
	out := run(t, "policies", "--log-level", "off")
	assert.Contains(t, out, "none      unsynchronized")
	assert.Contains(t, out, "mutex     concurrent-safe")
	assert.Contains(t, out, "onceflag  unsynchronized")
}

func TestUnknownLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"show", "--log-level", "chatty"})
	assert.ErrorContains(t, cmd.Execute(), "unknown log level")
}

func TestRaceRejectsNonPositiveThreads(t *testing.T) {
	for _, n := range []string{"0", "-2"} {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"race", "--threads=" + n, "--log-level", "off"})
		assert.ErrorContains(t, cmd.Execute(), "threads must be positive", n)
	}
}
