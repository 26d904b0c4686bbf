package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/lwozniak/sqlparq/pkg/logger"
	"github.com/lwozniak/sqlparq/pkg/models"
)

// ConnectSQL opens a connection to the SQL Server endpoint described by
// spec and verifies it with a ping. The caller owns the returned handle
// and must close it on every exit path.
func ConnectSQL(spec models.ConnectionSpec) (*sql.DB, error) {
	driver := spec.Driver
	if driver == "" {
		driver = "sqlserver"
	}

	logger.Get().Info("connecting to SQL Server", zap.String("target", spec.Redacted()))
	db, err := sql.Open(driver, buildDSN(spec))
	if err != nil {
		return nil, fmt.Errorf("error opening SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to SQL database (ping failed): %w", err)
	}

	logger.Get().Info("connected to SQL Server", zap.String("database", spec.Database))
	return db, nil
}

// buildDSN assembles a sqlserver:// URL. Credentials go through url.URL so
// reserved characters in passwords survive.
func buildDSN(spec models.ConnectionSpec) string {
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(spec.Username, spec.Password),
		Host:     spec.Server,
		RawQuery: url.Values{"database": []string{spec.Database}}.Encode(),
	}
	return u.String()
}
