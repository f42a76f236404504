package services

import (
	"context"

	"homeBakery/entities"
	"homeBakery/models"
	"homeBakery/repository"
	"homeBakery/storefront"

	"go.uber.org/zap"
)

const OrderStatusCreated = "created"

type OrderService struct {
	cs     CartService
	or     repository.OrderRepository
	nr     repository.OrderNotifier
	logger *zap.Logger
}

// NewOrderService wires order intake. notifier may be nil when no
// dispatch channel is configured.
func NewOrderService(cartService CartService, orderRepo repository.OrderRepository, notifier repository.OrderNotifier, logger *zap.Logger) OrderService {
	return OrderService{
		cs:     cartService,
		or:     orderRepo,
		nr:     notifier,
		logger: logger,
	}
}

// Accept stores a validated order and announces it.
func (ors *OrderService) Accept(ctx context.Context, order entities.Order) (orderId int, err error) {
	prods := make([]models.OrdersProducts_db, 0, len(order.Products))
	for _, p := range order.Products {
		prods = append(prods, models.OrdersProducts_db{
			ProductId: p.Id,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Price:     p.UnitPrice,
		})
	}
	newOrder := models.Order_db{
		Date:             order.Date,
		Name:             order.Form.Name,
		Phone:            order.Form.Phone,
		Address:          order.Form.Address,
		DeliveryOptionId: order.DeliveryOption.Id,
		DeliveryLabel:    order.DeliveryOption.Label,
		DeliveryCharge:   order.Totals.DeliveryCharge,
		ItemSubtotal:     order.Totals.ItemSubtotal,
		TotalPrice:       order.Totals.GrandTotal,
		Status:           OrderStatusCreated,
	}
	orderId, err = ors.or.SaveOrder(ctx, newOrder, prods)
	if err != nil {
		return
	}
	ors.logger.Info("order created", zap.Int("order_id", orderId), zap.Int("grand_total", order.Totals.GrandTotal))

	if ors.nr == nil {
		return
	}
	order.OrderId = orderId
	order.Status = OrderStatusCreated
	if e := ors.nr.PublishOrder(ctx, order); e != nil {
		// the order is stored; staff still see it through the read-back
		ors.logger.Warn("order notification not sent", zap.Int("order_id", orderId), zap.Error(e))
	}
	return
}

func (ors *OrderService) CreateOrder(ctx context.Context, cartSessionId string) (resp entities.OrderResponse, err error) {
	sess, err := ors.cs.LoadSession(ctx, cartSessionId)
	if err != nil {
		return
	}
	rec := &storefront.Recorder{}
	sess.Subscribe(rec.Listen)
	order, err := sess.Submit(ctx, ors)
	if err != nil {
		return
	}
	if err = ors.cs.SaveSession(ctx, cartSessionId, sess); err != nil {
		return
	}
	resp = entities.OrderResponse{
		OrderId: order.OrderId,
		Totals:  order.Totals,
		Events:  rec.Names(),
	}
	return
}

func (ors *OrderService) GetOrderById(ctx context.Context, orderId int) (order entities.Order, err error) {
	order, err = ors.or.GetOrderById(ctx, orderId)
	return
}
