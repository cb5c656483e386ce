package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"TELEGRAM_TOKEN", "OCR_LANGUAGE", "TESSERACT_PATH", "TESSDATA_PREFIX", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLangs_DefaultLogLevelIsQuiet(t *testing.T) {
	clearEnv(t)

	out, err := execute(t, "langs")
	require.NoError(t, err)
	require.Contains(t, out, "* rus+eng")
	require.Equal(t, cliLogLevel, cfg.LogLevel)
}

func TestLangs_LogLevelFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")

	_, err := execute(t, "langs")
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLangFlagOverridesInvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OCR_LANGUAGE", "deu")

	out, err := execute(t, "--lang", "eng", "langs")
	require.NoError(t, err)
	require.Contains(t, out, "* eng")

	_, err = execute(t, "langs")
	require.ErrorContains(t, err, "invalid language")
}
