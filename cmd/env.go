package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/freight-audit/internal/normalize"
	"github.com/sells-group/freight-audit/internal/store"
)

// openStore creates the configured snapshot store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// loadMapping resolves the column mapping, preferring the configured
// override file.
func loadMapping() (normalize.ColumnMapping, error) {
	if cfg.Source.MappingFile == "" {
		return normalize.DefaultMapping(), nil
	}
	return normalize.LoadMapping(cfg.Source.MappingFile)
}
