package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initApp(t *testing.T, args ...string) (*app, error) {
	t.Helper()
	fs := pflag.NewFlagSet("svcrun", pflag.ContinueOnError)
	addGlobalFlags(fs)
	require.NoError(t, fs.Parse(args))

	a := &app{v: viper.New()}
	return a, a.init(fs)
}

func TestInit_Defaults(t *testing.T) {
	a, err := initApp(t)
	require.NoError(t, err)

	assert.Equal(t, "info", a.cfg.LogLevel)
	assert.Equal(t, 10*time.Second, a.cfg.ReportInterval)
	assert.Zero(t, a.cfg.Timeout)
	assert.Empty(t, a.cfg.MetricsAddr)
	assert.Equal(t, logrus.InfoLevel, a.log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, a.log.Formatter)
}

func TestInit_Precedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "svcrun.yaml")
	require.NoError(t, os.WriteFile(file,
		[]byte("log-level: warn\nlog-format: json\nreport-interval: 3s\ntimeout: 1m\n"), 0o600))
	t.Setenv("SVCRUN_LOG_LEVEL", "debug")
	t.Setenv("SVCRUN_METRICS_ADDR", ":9999")

	a, err := initApp(t, "--config", file, "--timeout", "5s")
	require.NoError(t, err)

	assert.Equal(t, "debug", a.cfg.LogLevel, "env beats config file")
	assert.Equal(t, ":9999", a.cfg.MetricsAddr)
	assert.Equal(t, 3*time.Second, a.cfg.ReportInterval, "config file beats default")
	assert.Equal(t, 5*time.Second, a.cfg.Timeout, "flag beats config file")
	assert.IsType(t, &logrus.JSONFormatter{}, a.log.Formatter)
}

func TestInit_BadValues(t *testing.T) {
	_, err := initApp(t, "--log-level", "loud")
	assert.Error(t, err)

	_, err = initApp(t, "--log-format", "xml")
	assert.Error(t, err)

	_, err = initApp(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPumpCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader("1\n2\nnot-a-number\n\n3\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"pump", "--factor", "3", "--log-level", "error", "--timeout", "5s"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "3\n6\n9\n", out.String())
}

func TestPollCommand_Timeout(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o600))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"poll", file, "--interval", "5ms", "--timeout", "30ms", "--log-level", "error"})

	start := time.Now()
	require.NoError(t, cmd.Execute())
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestPollCommand_MissingFileFails(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"poll", filepath.Join(t.TempDir(), "missing"), "--log-level", "panic"})
	assert.Error(t, cmd.Execute())
}
