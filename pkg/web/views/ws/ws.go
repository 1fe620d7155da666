package ws

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"

	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	"github.com/openwms/procflow/pkg/core/notify"
	"github.com/openwms/procflow/pkg/middleware/auth"
	"github.com/openwms/procflow/pkg/middleware/logger"
)

const sessionKey = "session_uuid"

// Handle fans designer events out to connected clients. Each socket
// subscribes to one editing session; events for other sessions are
// filtered out before broadcast.
type Handle struct {
	wsClient *melody.Melody
	events   notify.MsgCenter
}

func NewWSHandle(ctx context.Context, events notify.MsgCenter) *Handle {
	h := &Handle{
		wsClient: melody.New(),
		events:   events,
	}
	h.initWebSocket()

	if err := events.Registry(ctx, notify.SessionUpdate, h.onEvent); err != nil {
		logger.Errorf(ctx, "registry session-update err: %+v", err)
	}
	if err := events.Registry(ctx, notify.FlowSaved, h.onEvent); err != nil {
		logger.Errorf(ctx, "registry flow-saved err: %+v", err)
	}
	if err := events.Registry(ctx, notify.FlowDeleted, h.onEvent); err != nil {
		logger.Errorf(ctx, "registry flow-deleted err: %+v", err)
	}
	return h
}

// SessionEvents upgrades the connection and pins it to a session id.
func (h *Handle) SessionEvents(ctx *gin.Context) {
	sessionUUID, err := uuid.FromString(ctx.Param("session_uuid"))
	if err != nil {
		ctx.JSON(code.ParamErr.HTTPCode, gin.H{"msg": err.Error()})
		return
	}
	userInfo := auth.GetCurrentUser(ctx)

	if err := h.wsClient.HandleRequestWithKeys(ctx.Writer, ctx.Request, map[string]any{
		auth.USERKEY: userInfo,
		"ctx":        ctx,
		sessionKey:   sessionUUID,
	}); err != nil {
		logger.Errorf(ctx, "SessionEvents HandleRequestWithKeys err: %+v", err)
	}
}

// onEvent receives one pubsub payload and forwards it to the sockets
// watching that session. Flow-level events go to everyone.
func (h *Handle) onEvent(ctx context.Context, payload string) error {
	msg := &notify.SendMsg{}
	if err := json.Unmarshal([]byte(payload), msg); err != nil {
		logger.Errorf(ctx, "decode ws event err: %+v", err)
		return err
	}

	return h.wsClient.BroadcastFilter([]byte(payload), func(s *melody.Session) bool {
		if msg.SessionUUID == uuid.Nil {
			return true
		}
		v, ok := s.Get(sessionKey)
		if !ok {
			return false
		}
		id, ok := v.(uuid.UUID)
		return ok && id == msg.SessionUUID
	})
}

func (h *Handle) initWebSocket() {
	h.wsClient.HandleClose(func(s *melody.Session, _ int, _ string) error {
		if ctx, ok := s.Get("ctx"); ok {
			logger.Infof(ctx.(context.Context), "designer ws client close keys: %+v", s.Keys)
		}
		return nil
	})

	h.wsClient.HandleDisconnect(func(s *melody.Session) {
		if ctx, ok := s.Get("ctx"); ok {
			logger.Infof(ctx.(context.Context), "designer ws client disconnected keys: %+v", s.Keys)
		}
	})

	h.wsClient.HandleError(func(s *melody.Session, err error) {
		if errors.Is(err, melody.ErrMessageBufferFull) {
			return
		}
		if closeErr, ok := err.(*websocket.CloseError); ok {
			if closeErr.Code == websocket.CloseGoingAway {
				return
			}
		}
		if ctx, ok := s.Get("ctx"); ok {
			logger.Errorf(ctx.(context.Context), "designer ws error keys: %+v, err: %+v", s.Keys, err)
		}
	})

	h.wsClient.HandleConnect(func(s *melody.Session) {
		if ctx, ok := s.Get("ctx"); ok {
			logger.Infof(ctx.(context.Context), "designer ws connect keys: %+v", s.Keys)
		}
	})

	// Clients only listen; inbound frames are ignored.
	h.wsClient.HandleMessage(func(_ *melody.Session, _ []byte) {})
}
