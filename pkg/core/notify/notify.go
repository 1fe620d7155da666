package notify

import (
	"context"

	"github.com/openwms/procflow/pkg/common/uuid"
)

type Action string

const (
	FlowSaved     Action = "flow-saved"
	FlowDeleted   Action = "flow-deleted"
	SessionUpdate Action = "session-update"
	MsgNotify     Action = "msg-notify"
)

type SendMsg struct {
	Channel     Action    `json:"action"`
	FlowUUID    uuid.UUID `json:"flow_uuid"`
	SessionUUID uuid.UUID `json:"session_uuid"`
	UserID      string    `json:"user_id"`
	Data        any       `json:"data"`
	UUID        uuid.UUID `json:"uuid"`
	Timestamp   int64     `json:"timestamp"`
}

type HandleFunc func(ctx context.Context, msg string) error

// MsgCenter broadcasts designer events across processes. Dispatch is
// fire-and-forget: delivery failures are logged, never surfaced to the
// mutation that triggered them.
type MsgCenter interface {
	Registry(ctx context.Context, msgName Action, handleFunc HandleFunc) error
	Broadcast(ctx context.Context, msg *SendMsg) error
	Dispatch(ctx context.Context, msg *SendMsg)
	Close(ctx context.Context) error
}
