// Package drivers selects a docstore adapter from configuration.
package drivers

import (
	"context"
	"fmt"

	"github.com/angelmondragon/universe-backend/pkg/config"
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	"github.com/angelmondragon/universe-backend/pkg/docstore/mongostore"
	"github.com/angelmondragon/universe-backend/pkg/docstore/sqlstore"
	"github.com/angelmondragon/universe-backend/pkg/logger"
)

// Open connects the adapter named by cfg.Driver. Callers should check
// cfg.Configured first; an unconfigured store yields docstore.ErrUnavailable.
func Open(ctx context.Context, cfg config.StoreConfig, logg *logger.Logger) (docstore.Client, error) {
	if !cfg.Configured() {
		return nil, docstore.ErrUnavailable
	}
	switch cfg.DriverName() {
	case config.StoreDriverMongo:
		return mongostore.New(ctx, cfg, logg)
	case config.StoreDriverSQLite, config.StoreDriverPostgres, config.StoreDriverMemory:
		return sqlstore.New(ctx, cfg, logg)
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
}
