package log

import (
	"context"
	"errors"
	"reflect"

	"github.com/mwantia/fabric/pkg/container"
)

var loggerServiceType = reflect.TypeOf((*LoggerService)(nil)).Elem()

// Resolve returns the LoggerService registered in sc, named after the
// component asking for it. An empty name returns the root logger.
func Resolve(ctx context.Context, sc *container.ServiceContainer, component string) (LoggerService, error) {
	ok, resolved := sc.ResolveByType(ctx, loggerServiceType)
	if !ok {
		return nil, errors.New("no logger service registered")
	}

	logger, ok := resolved.(LoggerService)
	if !ok {
		return nil, errors.New("registered logger does not implement LoggerService")
	}
	if component == "" {
		return logger, nil
	}
	return logger.Named(component), nil
}
