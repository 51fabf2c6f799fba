package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/fabric/pkg/container"
	config "github.com/mwantia/pathways/internal/config/server"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, Parse("debug"))
	assert.Equal(t, Warn, Parse(" warning "))
	assert.Equal(t, Error, Parse("ERROR"))
	assert.Equal(t, Info, Parse("verbose"))
	assert.Equal(t, "WARN", Warn.String())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("pathways", config.LogServerConfig{Level: "warn"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  [pathways] shown 1")
}

func TestJSONEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("pathways", config.LogServerConfig{Level: "debug", Format: "json"}, &buf)

	logger.Named("http").Debug("request %s", "GET /healthz")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry.Level)
	assert.Equal(t, "pathways/http", entry.Service)
	assert.Equal(t, "request GET /healthz", entry.Message)
}

func TestWithAttachesFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger("pathways", config.LogServerConfig{Level: "info"}, &buf)

	logger := base.With("session", "abc").Named("match")
	logger.With("matched", 3).Info("filtered")
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "[pathways/match] filtered session=abc matched=3"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "[pathways] plain"), lines[1])
}

func TestWithJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("", config.LogServerConfig{Level: "info", Format: "json"}, &buf)

	logger.With("request_id", "r-1", "dangling").Info("done")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, map[string]any{"request_id": "r-1", "dangling": "MISSING"}, entry.Fields)
	assert.Empty(t, entry.Service)
}

func TestConcurrentEntriesAreNotInterleaved(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("", config.LogServerConfig{Level: "info", Format: "json"}, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.Named("worker").Info("entry %d", i)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		var entry logEntry
		assert.NoError(t, json.Unmarshal([]byte(line), &entry))
	}
}

func TestMessageWithoutArgsIsNotFormatted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("", config.LogServerConfig{Level: "info"}, &buf)

	logger.Info("100% done")
	assert.Contains(t, buf.String(), "100% done")
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("", config.LogServerConfig{Level: "info"}, &buf).(*LoggerServiceImpl)

	code := -1
	logger.exit = func(c int) { code = c }
	logger.Fatal("boom")

	assert.Equal(t, 1, code)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	sc := container.NewServiceContainer()

	_, err := Resolve(ctx, sc, "http")
	assert.Error(t, err)

	var buf bytes.Buffer
	root := NewWriterLogger("pathways", config.LogServerConfig{Level: "info"}, &buf)
	require.NoError(t, container.Register[LoggerServiceImpl](sc,
		container.With[LoggerService](),
		container.WithInstance(root)))

	logger, err := Resolve(ctx, sc, "http")
	require.NoError(t, err)
	logger.Info("resolved")
	assert.Contains(t, buf.String(), "[pathways/http] resolved")
}

type taggedLoggers struct {
	Root LoggerService `fabric:"inject"`
	Base LoggerService `fabric:"logger"`
	HTTP LoggerService `fabric:"logger:http"`
}

func TestLoggerTagProcessor(t *testing.T) {
	ctx := context.Background()
	sc := container.NewServiceContainer()

	var buf bytes.Buffer
	root := NewWriterLogger("pathways", config.LogServerConfig{Level: "info"}, &buf)
	require.NoError(t, container.Register[LoggerServiceImpl](sc,
		container.With[LoggerService](),
		container.WithInstance(root)))

	assert.Error(t, container.Register[*taggedLoggers](sc), "logger tags need the processor")

	sc.AddTagProcessor(NewLoggerTagProcessor())
	require.NoError(t, container.Register[*taggedLoggers](sc))

	loggers, err := container.Resolve[*taggedLoggers](ctx, sc)
	require.NoError(t, err)

	assert.Same(t, root, loggers.Root)
	assert.Same(t, root, loggers.Base)
	loggers.HTTP.Info("injected")
	assert.Contains(t, buf.String(), "[pathways/http] injected")
}

func TestLoggerTagProcessorCanProcess(t *testing.T) {
	ltp := NewLoggerTagProcessor()

	assert.True(t, ltp.CanProcess("logger"))
	assert.True(t, ltp.CanProcess("Logger:db"))
	assert.False(t, ltp.CanProcess("inject"))
	assert.False(t, ltp.CanProcess("loggers"))
}
