package migrate

import (
	"context"

	"github.com/openwms/procflow/pkg/middleware/db"
	"github.com/openwms/procflow/pkg/middleware/logger"
	"github.com/openwms/procflow/pkg/repo/model"
)

func Table(ctx context.Context) error {
	d := db.DB().DBWithContext(ctx)
	models := []any{
		&model.ProcessFlow{},
		&model.NodeConfiguration{},
	}
	for _, m := range models {
		if err := d.AutoMigrate(m); err != nil {
			logger.Errorf(ctx, "migrate table err: %+v", err)
			return err
		}
	}
	return nil
}
