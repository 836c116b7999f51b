package cmd

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{}))

	logger.Info("rendered terraform file", "fabric", "f1", "file", "main.tf")
	logger.Debug("hidden below the default level")
	logger.With("fabric", "f1").WithGroup("render").Warn("slow", "files", 24)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} INFO rendered terraform file fabric=f1 file=main.tf$`, lines[0])
	assert.Regexp(t, `WARN slow fabric=f1 render.files=24$`, lines[1])
}

func TestTeeHandler(t *testing.T) {
	var file, terminal bytes.Buffer
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	logger := slog.New(teeHandler{
		NewPrettyHandler(&file, PrettyHandlerOptions{Level: slog.LevelDebug}),
		NewPrettyHandler(&terminal, PrettyHandlerOptions{Level: level}),
	})

	logger.Debug("rendering fabric", "fabric", "f1")
	logger.Info("fabric rendered", "fabric", "f1")

	assert.Contains(t, file.String(), "DEBUG rendering fabric fabric=f1")
	assert.Contains(t, file.String(), "INFO fabric rendered fabric=f1")
	assert.NotContains(t, terminal.String(), "rendering fabric")
	assert.Contains(t, terminal.String(), "INFO fabric rendered fabric=f1")

	level.Set(slog.LevelDebug)
	logger.Debug("rendered terraform file", "file", "main.tf")
	assert.Contains(t, terminal.String(), "DEBUG rendered terraform file file=main.tf")
}

func TestRootCommands(t *testing.T) {
	var names []string
	for _, c := range RootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "render")
	assert.Contains(t, names, "version")
	assert.NotNil(t, RootCmd.PersistentFlags().Lookup("verbose"))
}
