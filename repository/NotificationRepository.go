package repository

import (
	"context"
	"encoding/json"
	"errors"

	"homeBakery/entities"
	"homeBakery/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const OrdersChannel = "orders:new"

// OrderNotifier announces stored orders to the workers that call or text
// the customer back.
type OrderNotifier interface {
	PublishOrder(ctx context.Context, order entities.Order) (err error)
}

type RedisOrderNotifier struct {
	rdb     *redis.Client
	channel string
	logger  *zap.Logger
}

func NewRedisOrderNotifier(redis_conn *redis.Client, channel string, logger *zap.Logger) (OrderNotifier, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if channel == "" {
		channel = OrdersChannel
	}
	return &RedisOrderNotifier{
		rdb:     redis_conn,
		channel: channel,
		logger:  logger,
	}, nil
}

func (n *RedisOrderNotifier) PublishOrder(ctx context.Context, order entities.Order) (err error) {
	jsonData, err := json.Marshal(order)
	if err != nil {
		n.logger.Error("marshal order notification", zap.Int("order_id", order.OrderId), zap.Error(err))
		err = models.ErrServerError
		return
	}
	err = n.rdb.Publish(ctx, n.channel, jsonData).Err()
	if err != nil {
		n.logger.Error("publish order", zap.Int("order_id", order.OrderId), zap.Error(err))
		err = models.ErrServerError
	}
	return
}
