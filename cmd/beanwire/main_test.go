package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/beanwire/pkg/beans"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	root := newRootCmd(zerolog.Nop())
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-prefix", "BWTEST"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "PATH")

	fields := map[string][]string{}
	for _, line := range lines[1:] {
		f := strings.Fields(line)
		fields[f[0]] = f[1:]
	}
	assert.Equal(t, []string{"time.Duration", "rw"}, fields["interval.poll"])
	assert.Equal(t, []string{"float64", "rw"}, fields["gating.cpuThreshold"])
	assert.Equal(t, []string{"string", "rw"}, fields["service.url"])
	assert.Equal(t, []string{"string", "w"}, fields["service.authKey"])
	assert.Equal(t, []string{"bool", "r"}, fields["service.authenticated"])
	assert.Contains(t, fields, "nodeHome")
}

func TestBind_PrintsTOML(t *testing.T) {
	t.Setenv("BWTEST_GATING__IFACE", "eth0")

	out, err := run(t, "bind", "--set", "node_home=/data/node", "--set", "interval.poll=2s")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "/data/node", got["nodeHome"])
	assert.Equal(t, "2s", got["interval"].(map[string]any)["poll"])
	assert.Equal(t, "eth0", got["gating"].(map[string]any)["iface"])
	assert.Equal(t, "https://api.apphash.io", got["service"].(map[string]any)["url"])
	assert.NotContains(t, out, "authKey")
}

func TestBind_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("node_home = \"/from/file\"\n[batch]\nmax_bytes = 1024\n"), 0o644))

	out, err := run(t, "bind", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "nodeHome = '/from/file'")
	assert.Contains(t, out, "maxBytes = 1024")
}

func TestBind_SettingFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("node_home = \"/from/file\"\n[interval]\npoll = \"2s\"\n"), 0o644))

	poll := func(out string) any {
		var got map[string]any
		require.NoError(t, toml.Unmarshal([]byte(out), &got))
		return got["interval"].(map[string]any)["poll"]
	}

	out, err := run(t, "bind", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "2s", poll(out), "an unchanged --poll keeps the file value")

	out, err = run(t, "bind", "--config", path, "--poll", "3s", "--set", "interval.poll=1s")
	require.NoError(t, err)
	assert.Equal(t, "3s", poll(out), "a changed flag beats --set")

	out, err = run(t, "get", "nodeHome", "gating.cpuThreshold", "--config", path, "--node-home", "/from/flag", "--cpu-threshold", "0.25")
	require.NoError(t, err)
	assert.Equal(t, "nodeHome = /from/flag\ngating.cpuThreshold = 0.25\n", out)
}

func TestBind_ReportsEveryFailure(t *testing.T) {
	_, err := run(t, "bind",
		"--set", "node_home=/data/node",
		"--set", "interval.poll=soon",
		"--set", "batch.max_bytes=lots",
		"--set", "unknown=1",
	)
	require.Error(t, err)

	var agg *beans.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, 3, agg.Len())

	var report bytes.Buffer
	reportError(&report, err)
	assert.Contains(t, report.String(), "3 properties could not be set")
	assert.Contains(t, report.String(), `"interval.poll"`)
	assert.Contains(t, report.String(), `"batch.maxBytes"`)
	assert.Contains(t, report.String(), `"unknown"`)
}

func TestBind_IgnoreUnknown(t *testing.T) {
	_, err := run(t, "bind", "--ignore-unknown", "--set", "node_home=/data/node", "--set", "unknown=1")
	assert.NoError(t, err)
}

func TestBind_MissingNodeHome(t *testing.T) {
	_, err := run(t, "bind")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodeHome")
}

func TestGet(t *testing.T) {
	out, err := run(t, "get", "interval.send", "gating.enabled", "--set", "node_home=/data/node")
	require.NoError(t, err)
	assert.Equal(t, "interval.send = 5s\ngating.enabled = true\n", out)

	_, err = run(t, "get", "nope", "--set", "node_home=/data/node")
	assert.ErrorIs(t, err, beans.ErrNoSuchProperty)
}

func TestReportError_Plain(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, os.ErrNotExist)
	assert.Equal(t, "Error: file does not exist\n", buf.String())
}
