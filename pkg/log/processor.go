package log

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/mwantia/fabric/pkg/container"
)

// LoggerTagProcessor fills fields tagged fabric:"logger" with the root
// logger and fields tagged fabric:"logger:<component>" with a logger named
// after the component.
//
// fabric only builds tagged structs when at least one field uses
// fabric:"inject", so tagged structs need one plain injected field.
type LoggerTagProcessor struct{}

func NewLoggerTagProcessor() *LoggerTagProcessor {
	return &LoggerTagProcessor{}
}

// GetPriority runs the processor ahead of fabric's inject processor (0).
func (ltp *LoggerTagProcessor) GetPriority() int {
	return 50
}

func (ltp *LoggerTagProcessor) CanProcess(value string) bool {
	_, ok := loggerComponent(value)
	return ok
}

// Process resolves the root logger and names it after the tag's component.
func (ltp *LoggerTagProcessor) Process(ctx context.Context, sc *container.ServiceContainer, field reflect.StructField, value string) (any, error) {
	component, _ := loggerComponent(value)

	logger, err := Resolve(ctx, sc, component)
	if err != nil {
		return nil, fmt.Errorf("field '%s': %w", field.Name, err)
	}
	return logger, nil
}

func loggerComponent(value string) (string, bool) {
	head, component, _ := strings.Cut(value, ":")
	if !strings.EqualFold(strings.TrimSpace(head), "logger") {
		return "", false
	}
	return strings.TrimSpace(component), true
}
