// Package storefront ties the cart, the session resolver and the API
// client into the customer and admin flows.
package storefront

import (
	"context"
	"errors"

	"github.com/AminovSarvarbek/telegramshopfront/api"
	"github.com/AminovSarvarbek/telegramshopfront/cart"
	"github.com/AminovSarvarbek/telegramshopfront/models"
	"github.com/AminovSarvarbek/telegramshopfront/pkg/logger"
	"github.com/AminovSarvarbek/telegramshopfront/session"
)

// ErrEmptyCart means checkout was attempted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// Service is the customer-facing storefront flow.
type Service struct {
	Cart     *cart.Store
	Resolver *session.Resolver
	Client   *api.Client
	Log      *logger.Logger
}

// NewService wires the storefront flow together.
func NewService(c *cart.Store, r *session.Resolver, client *api.Client, log *logger.Logger) *Service {
	return &Service{Cart: c, Resolver: r, Client: client, Log: log.WithComponent("storefront")}
}

// LoadMenu fetches the catalog.
func (s *Service) LoadMenu(ctx context.Context) ([]models.Product, error) {
	return s.Client.GetMenu(ctx)
}

// Checkout submits the cart as an order. The payload is built from a
// snapshot taken up front — the live cart stays mutable while the request
// is in flight, and whatever happens to it meanwhile does not leak into
// the submitted order. The cart is cleared only on a success reply.
//
// A nil identity is allowed in the payload; the backend decides whether to
// accept anonymous orders.
func (s *Service) Checkout(ctx context.Context) (*models.OrderResponse, error) {
	lines := s.Cart.Snapshot()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	identity, err := s.Resolver.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.CreateOrder(ctx, models.OrderRequest{
		Items: lines,
		Total: cart.Total(lines),
		User:  identity,
	})
	if err != nil {
		return nil, err
	}

	if resp.Success {
		s.Cart.Clear(ctx)
		s.Log.Info("order placed", "order_id", resp.OrderID, "items", len(lines))
	} else {
		s.Log.Warn("order rejected", "message", resp.Message)
	}
	return resp, nil
}
