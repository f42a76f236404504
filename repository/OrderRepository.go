package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homeBakery/entities"
	"homeBakery/models"

	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type OrderRepository interface {
	Migrate(ctx context.Context) (err error)
	SaveOrder(ctx context.Context, order models.Order_db, prods []models.OrdersProducts_db) (orderId int, err error)
	GetOrderItems(ctx context.Context, orderId int) (prods []entities.CartItem, err error)
	GetOrderById(ctx context.Context, orderId int) (order entities.Order, err error)
}

type OrderRepo struct {
	db     *sql.DB
	driver string
	logger *zap.Logger
}

func NewOrderRepository(ctx context.Context, conn *sql.DB, driver string, logger *zap.Logger) (OrderRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	err := conn.PingContext(ctx)
	if err != nil {
		return nil, err
	}
	return &OrderRepo{
		db:     conn,
		driver: driver,
		logger: logger,
	}, nil
}

func (o *OrderRepo) schema() []string {
	serial := "SERIAL PRIMARY KEY"
	if o.driver == DriverSQLite {
		serial = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS Orders (
			Id ` + serial + `,
			Date TIMESTAMP NOT NULL,
			Name TEXT NOT NULL,
			Phone TEXT NOT NULL,
			Address TEXT NOT NULL DEFAULT '',
			DeliveryOptionId TEXT NOT NULL,
			DeliveryLabel TEXT NOT NULL DEFAULT '',
			DeliveryCharge INTEGER NOT NULL,
			ItemSubtotal INTEGER NOT NULL,
			TotalPrice INTEGER NOT NULL,
			Status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS OrdersProducts (
			Id ` + serial + `,
			OrderId INTEGER NOT NULL REFERENCES Orders(Id),
			ProductId INTEGER NOT NULL,
			Name TEXT NOT NULL,
			Quantity INTEGER NOT NULL,
			Price INTEGER NOT NULL
		)`,
	}
}

func (o *OrderRepo) Migrate(ctx context.Context) (err error) {
	for _, stmt := range o.schema() {
		if _, err = o.db.ExecContext(ctx, stmt); err != nil {
			o.logger.Error("migrate orders schema", zap.Error(err))
			return
		}
	}
	return
}

// SaveOrder writes the order and its lines in one transaction.
func (o *OrderRepo) SaveOrder(ctx context.Context, order models.Order_db, prods []models.OrdersProducts_db) (orderId int, err error) {
	tx, e := o.db.BeginTx(ctx, nil)
	if e != nil {
		o.logger.Error("begin order transaction", zap.Error(e))
		err = models.ErrServerError
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var oId int64
	e = tx.QueryRowContext(ctx, `INSERT INTO Orders (Date, Name, Phone, Address, DeliveryOptionId, DeliveryLabel, DeliveryCharge, ItemSubtotal, TotalPrice, Status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING Id`,
		order.Date, order.Name, order.Phone, order.Address, order.DeliveryOptionId, order.DeliveryLabel,
		order.DeliveryCharge, order.ItemSubtotal, order.TotalPrice, order.Status).Scan(&oId)
	if e != nil {
		o.logger.Error("insert order", zap.Error(e))
		err = models.ErrServerError
		return
	}

	for _, v := range prods {
		_, e = tx.ExecContext(ctx, "INSERT INTO OrdersProducts (OrderId, ProductId, Name, Quantity, Price) VALUES ($1, $2, $3, $4, $5)",
			oId, v.ProductId, v.Name, v.Quantity, v.Price)
		if e != nil {
			o.logger.Error("insert order item", zap.Int64("order_id", oId), zap.Int("product_id", v.ProductId), zap.Error(e))
			err = models.ErrServerError
			return
		}
	}

	if e = tx.Commit(); e != nil {
		o.logger.Error("commit order", zap.Int64("order_id", oId), zap.Error(e))
		err = models.ErrServerError
		return
	}
	orderId = int(oId)
	return
}

func (o *OrderRepo) GetOrderItems(ctx context.Context, orderId int) (prods []entities.CartItem, err error) {
	rows, e := o.db.QueryContext(ctx, "SELECT ProductId, Name, Quantity, Price FROM OrdersProducts WHERE OrderId=$1 ORDER BY Id", orderId)
	if e != nil {
		o.logger.Error("query order items", zap.Int("order_id", orderId), zap.Error(e))
		err = models.ErrServerError
		return
	}
	defer rows.Close()

	prods = []entities.CartItem{}
	for rows.Next() {
		prod := entities.CartItem{}
		err = rows.Scan(&prod.Id, &prod.Name, &prod.Quantity, &prod.UnitPrice)
		if err != nil {
			o.logger.Error("scan order item", zap.Int("order_id", orderId), zap.Error(err))
			err = models.ErrServerError
			return
		}
		prod.SumPrice = prod.Quantity * prod.UnitPrice
		prods = append(prods, prod)
	}
	if e = rows.Err(); e != nil {
		o.logger.Error("iterate order items", zap.Int("order_id", orderId), zap.Error(e))
		err = models.ErrServerError
	}
	return
}

func (o *OrderRepo) GetOrderById(ctx context.Context, orderId int) (order entities.Order, err error) {
	row := o.db.QueryRowContext(ctx, `SELECT Id, Date, Name, Phone, Address, DeliveryOptionId, DeliveryLabel, DeliveryCharge, ItemSubtotal, TotalPrice, Status
		FROM Orders WHERE Id=$1`, orderId)
	var or models.Order_db
	err = row.Scan(&or.Id, &or.Date, &or.Name, &or.Phone, &or.Address, &or.DeliveryOptionId, &or.DeliveryLabel,
		&or.DeliveryCharge, &or.ItemSubtotal, &or.TotalPrice, &or.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = models.ErrNotFoundError
		} else {
			o.logger.Error("query order", zap.Int("order_id", orderId), zap.Error(err))
			err = models.ErrServerError
		}
		return
	}

	prods, e := o.GetOrderItems(ctx, orderId)
	if e != nil {
		err = e
		return
	}

	itemCount := 0
	for _, p := range prods {
		itemCount += p.Quantity
	}
	order = entities.Order{
		OrderId:  or.Id,
		Date:     or.Date,
		Status:   or.Status,
		Products: prods,
		Totals: entities.Totals{
			ItemSubtotal:   or.ItemSubtotal,
			DeliveryCharge: or.DeliveryCharge,
			GrandTotal:     or.TotalPrice,
			ItemCount:      itemCount,
		},
		Form: entities.OrderForm{
			Name:             or.Name,
			Phone:            or.Phone,
			Address:          or.Address,
			DeliveryOptionId: or.DeliveryOptionId,
		},
		DeliveryOption: entities.DeliveryOption{
			Id:        or.DeliveryOptionId,
			Label:     or.DeliveryLabel,
			Surcharge: or.DeliveryCharge,
		},
	}
	return
}
