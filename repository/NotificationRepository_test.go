package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"homeBakery/entities"
	"homeBakery/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishOrder(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	sub := rdb.Subscribe(ctx, OrdersChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n, err := NewRedisOrderNotifier(rdb, "", zap.NewNop())
	require.NoError(t, err)
	order := entities.Order{
		OrderId: 7,
		Status:  "created",
		Totals:  entities.Totals{GrandTotal: 1700},
		Form:    entities.OrderForm{Name: "Anna", Phone: "79991234567"},
	}
	require.NoError(t, n.PublishOrder(ctx, order))

	select {
	case msg := <-sub.Channel():
		var got entities.Order
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, 7, got.OrderId)
		assert.Equal(t, "79991234567", got.Form.Phone)
	case <-time.After(2 * time.Second):
		t.Fatal("no order notification received")
	}
}

func TestPublishOrderServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	n, err := NewRedisOrderNotifier(rdb, "custom", zap.NewNop())
	require.NoError(t, err)
	mr.Close()

	err = n.PublishOrder(context.Background(), entities.Order{OrderId: 1})
	assert.ErrorIs(t, err, models.ErrServerError)
}

func TestNewRedisOrderNotifierNilConn(t *testing.T) {
	n, err := NewRedisOrderNotifier(nil, OrdersChannel, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, n)
}
