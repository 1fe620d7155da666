package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	r "github.com/redis/go-redis/v9"

	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	"github.com/openwms/procflow/pkg/core/notify"
	"github.com/openwms/procflow/pkg/middleware/logger"
	"github.com/openwms/procflow/pkg/middleware/redis"
	"github.com/openwms/procflow/pkg/utils"
)

// Redis pub/sub fan-out so every apiserver replica sees designer
// events regardless of which one handled the mutation.

var (
	once   sync.Once
	center *Events
)

type Events struct {
	actions sync.Map
	subs    sync.Map
	client  *r.Client
	pool    *ants.Pool
	wait    sync.WaitGroup
}

func NewEvents(workers int) notify.MsgCenter {
	once.Do(func() {
		pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
		if err != nil {
			logger.Fatalf(context.Background(), "create notify pool err: %+v", err)
		}
		center = &Events{
			client: redis.GetClient(),
			pool:   pool,
		}
	})
	return center
}

func (e *Events) Registry(ctx context.Context, msgName notify.Action, handleFunc notify.HandleFunc) error {
	if _, ok := e.actions.LoadOrStore(msgName, handleFunc); ok {
		return code.NotifyActionAlreadyRegistered.WithMsg(string(msgName))
	}

	sub := e.client.Subscribe(ctx, string(msgName))
	e.subs.Store(msgName, sub)

	e.wait.Add(1)
	utils.SafelyGo(func() {
		defer e.wait.Done()

		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					logger.Infof(ctx, "exit redis channel name: %s", string(msgName))
					if err := sub.Unsubscribe(ctx, string(msgName)); err != nil {
						logger.Errorf(ctx, "unsubscribe fail msg name: %s, err: %+v", msgName, err)
					}
					e.actions.Delete(msgName)
					return
				}

				if msg == nil {
					continue
				}
				if err := handleFunc(ctx, msg.Payload); err != nil {
					logger.Errorf(ctx, "handle redis msg fail name: %s, err: %+v", msgName, err)
				}
			case <-ctx.Done():
				logger.Infof(ctx, "exit redis channel name: %s", string(msgName))
				if err := sub.Unsubscribe(ctx, string(msgName)); err != nil {
					logger.Errorf(ctx, "unsubscribe fail msg name: %s, err: %+v", msgName, err)
				}
				e.actions.Delete(msgName)
				return
			}
		}
	}, func(err error) {
		logger.Errorf(ctx, "Registry handle msg err: %+v", err)
	})
	return nil
}

func (e *Events) Broadcast(ctx context.Context, msg *notify.SendMsg) error {
	msg.Timestamp = time.Now().Unix()
	if msg.UUID == uuid.Nil {
		msg.UUID = uuid.New()
	}

	data, _ := json.Marshal(msg)
	ret := e.client.Publish(ctx, string(msg.Channel), data)
	if ret.Err() != nil {
		logger.Errorf(ctx, "send msg fail action: %s, err: %+v", msg.Channel, ret.Err())
		return code.NotifySendMsgErr
	}

	return nil
}

// Dispatch publishes on the worker pool so mutations never block on
// redis. A saturated pool drops the event with a log line.
func (e *Events) Dispatch(ctx context.Context, msg *notify.SendMsg) {
	err := e.pool.Submit(func() {
		if err := e.Broadcast(ctx, msg); err != nil {
			logger.Errorf(ctx, "dispatch msg fail action: %s, err: %+v", msg.Channel, err)
		}
	})
	if err != nil {
		logger.Warnf(ctx, "notify pool full, drop action: %s", msg.Channel)
	}
}

func (e *Events) Close(_ context.Context) error {
	e.wait.Wait()
	e.pool.Release()
	return nil
}
