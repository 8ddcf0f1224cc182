//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/code-critic/internal/app"
)

// InitializeApp builds the application from the configuration file at configFile,
// or from the default search path when configFile is empty.
func InitializeApp(ctx context.Context, configFile string) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}
