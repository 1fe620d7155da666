package redis

import (
	"context"
	"fmt"

	r "github.com/redis/go-redis/v9"

	logger "github.com/openwms/procflow/pkg/middleware/logger"
)

type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

var redisClient *r.Client

func initRedis(conf *Redis) (*r.Client, error) {
	client := r.NewClient(&r.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func InitRedis(ctx context.Context, conf *Redis) {
	var err error
	redisClient, err = initRedis(conf)
	if err != nil {
		logger.Fatalf(ctx, "init redis fail err: %+v", err)
	}
}

func CloseRedis(_ context.Context) {
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// GetClient returns the shared client, nil before InitRedis.
func GetClient() *r.Client {
	return redisClient
}
