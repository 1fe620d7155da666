package repo

import (
	"context"

	"github.com/openwms/procflow/pkg/common/uuid"
)

// IDOrUUIDTranslate maps between surrogate keys and the UUIDs exposed
// over the API.
type IDOrUUIDTranslate interface {
	GetIDByUUID(ctx context.Context, uuid uuid.UUID) (int64, error)
	GetUUIDByID(ctx context.Context, id int64) (uuid.UUID, error)
}
