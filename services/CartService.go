package services

import (
	"context"

	"homeBakery/entities"
	"homeBakery/repository"
	"homeBakery/storefront"

	"github.com/google/uuid"
)

type CartService struct {
	catalog repository.CatalogRepository
	sr      repository.SessionRepository
}

func NewCartService(catalog repository.CatalogRepository, sessionRepo repository.SessionRepository) CartService {
	return CartService{
		catalog: catalog,
		sr:      sessionRepo,
	}
}

func (cs *CartService) CreateCartSession(ctx context.Context) (cartSessionId string, err error) {
	cartSessionId = uuid.NewString()
	err = cs.sr.SetSession(ctx, cartSessionId, storefront.NewSession(cs.catalog).Snapshot())
	return
}

// ResumeCartSession extends the lifetime of a stored session. Ids the store
// does not know, forged or expired, are replaced by a freshly minted session.
func (cs *CartService) ResumeCartSession(ctx context.Context, cartSessionId string) (id string, err error) {
	if cartSessionId != "" {
		exists, e := cs.sr.RefreshSession(ctx, cartSessionId)
		if e != nil {
			err = e
			return
		}
		if exists {
			id = cartSessionId
			return
		}
	}
	return cs.CreateCartSession(ctx)
}

// LoadSession restores the shopper's session. Unknown or expired ids get a
// fresh empty one.
func (cs *CartService) LoadSession(ctx context.Context, cartSessionId string) (sess *storefront.Session, err error) {
	if cartSessionId == "" {
		sess = storefront.NewSession(cs.catalog)
		return
	}
	state, exists, e := cs.sr.GetSession(ctx, cartSessionId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		sess = storefront.NewSession(cs.catalog)
		return
	}
	sess = storefront.RestoreSession(cs.catalog, state)
	return
}

func (cs *CartService) SaveSession(ctx context.Context, cartSessionId string, sess *storefront.Session) (err error) {
	err = cs.sr.SetSession(ctx, cartSessionId, sess.Snapshot())
	return
}

// apply runs one shopper action against the stored session and saves the
// result. A failed action leaves the stored session untouched.
func (cs *CartService) apply(ctx context.Context, cartSessionId string, action func(*storefront.Session) error) (resp entities.CartResponse, err error) {
	sess, err := cs.LoadSession(ctx, cartSessionId)
	if err != nil {
		return
	}
	rec := &storefront.Recorder{}
	sess.Subscribe(rec.Listen)
	if err = action(sess); err != nil {
		return
	}
	if err = cs.SaveSession(ctx, cartSessionId, sess); err != nil {
		return
	}
	resp = sess.View()
	resp.Events = rec.Names()
	return
}

func (cs *CartService) GetCartItems(ctx context.Context, cartSessionId string) (resp entities.CartResponse, err error) {
	sess, err := cs.LoadSession(ctx, cartSessionId)
	if err != nil {
		return
	}
	resp = sess.View()
	return
}

func (cs *CartService) AddCartItem(ctx context.Context, cartSessionId string, itemId int) (entities.CartResponse, error) {
	return cs.apply(ctx, cartSessionId, func(s *storefront.Session) error {
		return s.AddItem(itemId)
	})
}

func (cs *CartService) RemoveCartItem(ctx context.Context, cartSessionId string, itemId int) (entities.CartResponse, error) {
	return cs.apply(ctx, cartSessionId, func(s *storefront.Session) error {
		s.RemoveItem(itemId)
		return nil
	})
}

func (cs *CartService) SetCartItemQuantity(ctx context.Context, cartSessionId string, req entities.CartRequest) (entities.CartResponse, error) {
	return cs.apply(ctx, cartSessionId, func(s *storefront.Session) error {
		return s.SetQuantity(req.ItemId, req.Quantity)
	})
}

func (cs *CartService) ClearCart(ctx context.Context, cartSessionId string) (entities.CartResponse, error) {
	return cs.apply(ctx, cartSessionId, func(s *storefront.Session) error {
		s.ClearCart()
		return nil
	})
}

func (cs *CartService) SetCartOpen(ctx context.Context, cartSessionId string, open bool) (entities.CartResponse, error) {
	return cs.apply(ctx, cartSessionId, func(s *storefront.Session) error {
		if open {
			s.OpenCart()
		} else {
			s.CloseCart()
		}
		return nil
	})
}

func (cs *CartService) GetOrderForm(ctx context.Context, cartSessionId string) (form entities.OrderForm, err error) {
	sess, err := cs.LoadSession(ctx, cartSessionId)
	if err != nil {
		return
	}
	form = sess.Form()
	return
}

// UpdateOrderForm applies only the fields present in req.
func (cs *CartService) UpdateOrderForm(ctx context.Context, cartSessionId string, req entities.OrderFormRequest) (form entities.OrderForm, err error) {
	var sess *storefront.Session
	_, err = cs.apply(ctx, cartSessionId, func(s *storefront.Session) error {
		sess = s
		if req.DeliveryOptionId != nil {
			if err := s.SelectDelivery(*req.DeliveryOptionId); err != nil {
				return err
			}
		}
		if req.Name != nil {
			s.SetName(*req.Name)
		}
		if req.Phone != nil {
			s.SetPhone(*req.Phone)
		}
		if req.Address != nil {
			s.SetAddress(*req.Address)
		}
		return nil
	})
	if err != nil {
		return
	}
	form = sess.Form()
	return
}
