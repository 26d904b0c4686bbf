package etl

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lwozniak/sqlparq/pkg/logger"
)

// Pipeline moves one table from a Reader to a Writer in a single
// sequential pass: read all, write all. There is no retry and no partial
// recovery; the first error stops the run and propagates to the caller.
type Pipeline struct {
	Reader Reader
	Writer Writer
}

func NewPipeline(r Reader, w Writer) *Pipeline {
	return &Pipeline{Reader: r, Writer: w}
}

func (p *Pipeline) Run(ctx context.Context) error {
	log := logger.Get()
	start := time.Now()

	table, err := p.Reader.Read(ctx)
	if err != nil {
		log.Error("read failed", zap.Error(err))
		return err
	}

	if err := p.Writer.Write(ctx, table); err != nil {
		log.Error("write failed", zap.Error(err))
		return err
	}

	elapsed := time.Since(start)
	rate := 0.0
	if elapsed.Seconds() > 0 {
		rate = float64(table.NumRows()) / elapsed.Seconds()
	}
	log.Info("pipeline finished",
		zap.Int("rows", table.NumRows()),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rows_per_sec", rate))
	return nil
}
