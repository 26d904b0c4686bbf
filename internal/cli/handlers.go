package cli

import (
	"context"

	"github.com/lwozniak/sqlparq/internal/config"
	"github.com/lwozniak/sqlparq/internal/etl"
	"github.com/lwozniak/sqlparq/pkg/database"
	"github.com/lwozniak/sqlparq/pkg/logger"
	"github.com/lwozniak/sqlparq/pkg/models"
)

func runExtract(ctx context.Context, opts *config.ExtractOptions) error {
	config.ApplyEnvDefaults(&opts.Connection)
	if err := opts.Validate(); err != nil {
		return err
	}

	db, err := database.ConnectSQL(opts.Connection)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline := etl.NewPipeline(
		&etl.SourceReader{DB: db, Table: opts.Table, Query: opts.Query},
		&etl.ArchiveWriter{
			Location:    models.ArchiveLocation{Path: opts.OutputPath, Codec: opts.Compression},
			PartitionBy: opts.PartitionBy,
		},
	)

	if err := pipeline.Run(ctx); err != nil {
		return err
	}
	logger.Get().Info("data extraction completed successfully")
	return nil
}

func runRestore(ctx context.Context, opts *config.RestoreOptions) error {
	config.ApplyEnvDefaults(&opts.Connection)
	if err := opts.Validate(); err != nil {
		return err
	}
	policy, err := models.ParseExistencePolicy(opts.IfExists)
	if err != nil {
		return err
	}

	db, err := database.ConnectSQL(opts.Connection)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline := etl.NewPipeline(
		&etl.ArchiveReader{
			Location:       models.ArchiveLocation{Path: opts.ParquetPath},
			TransformQuery: opts.TransformQuery,
		},
		&etl.DestinationWriter{
			DB:        db,
			Table:     opts.TableName,
			Schema:    opts.Schema,
			Policy:    policy,
			BatchSize: opts.BatchSize,
		},
	)

	if err := pipeline.Run(ctx); err != nil {
		return err
	}
	logger.Get().Info("data restoration completed successfully")
	return nil
}
