package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator"

	"github.com/AminovSarvarbek/telegramshopfront/api"
	"github.com/AminovSarvarbek/telegramshopfront/models"
	"github.com/AminovSarvarbek/telegramshopfront/pkg/logger"
	"github.com/AminovSarvarbek/telegramshopfront/session"
	"github.com/AminovSarvarbek/telegramshopfront/storage"
)

var (
	// ErrNoIdentity means no identity could be established, so an
	// identity-requiring operation refused to proceed.
	ErrNoIdentity = errors.New("cannot establish identity")
	// ErrImageRequired means a product was created without an image.
	ErrImageRequired = errors.New("product image is required")
)

var validate = validator.New()

// Admin is the back-office flow: login, catalog and order management.
type Admin struct {
	Resolver *session.Resolver
	Session  storage.Store
	Client   *api.Client
	Log      *logger.Logger
}

// NewAdmin wires the admin flow together. sess is the session-scoped store
// holding the authorization marker.
func NewAdmin(r *session.Resolver, sess storage.Store, client *api.Client, log *logger.Logger) *Admin {
	return &Admin{Resolver: r, Session: sess, Client: client, Log: log.WithComponent("admin")}
}

// Login resolves the identity and asks the backend to verify it. On a
// positive reply the identity is written to the session store as the
// authorization marker the route guard checks. The marker is advisory:
// the backend re-validates every admin call on its own.
func (a *Admin) Login(ctx context.Context) (*models.AdminVerifyResponse, error) {
	identity, err := a.Resolver.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrNoIdentity
	}

	resp, err := a.Client.VerifyAdmin(ctx, identity)
	if err != nil {
		return nil, err
	}

	if resp.Success && resp.IsAdmin {
		marker, err := json.Marshal(identity)
		if err != nil {
			return nil, fmt.Errorf("serialize admin marker: %w", err)
		}
		if err := a.Session.Set(ctx, storage.KeyAdminSession, string(marker)); err != nil {
			return nil, fmt.Errorf("store admin marker: %w", err)
		}
		a.Log.Info("admin verified", "user_id", identity.ID)
	}
	return resp, nil
}

// Guard returns a route guard over this admin's session store.
func (a *Admin) Guard() *session.Guard {
	return session.NewGuard(a.Session)
}

// CreateProduct validates the form locally and submits it. Validation
// failures never reach the transport layer.
func (a *Admin) CreateProduct(ctx context.Context, input models.ProductInput) (*models.APIResponse, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	if len(input.ImageData) == 0 {
		return nil, ErrImageRequired
	}
	return a.Client.AddProduct(ctx, input)
}

// UpdateProduct validates the form locally and submits it. On edit the
// image may be absent when the existing one is kept via ImageURL.
func (a *Admin) UpdateProduct(ctx context.Context, id int64, input models.ProductInput) (*models.APIResponse, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	return a.Client.UpdateProduct(ctx, id, input)
}

// DeleteProduct removes a catalog entry.
func (a *Admin) DeleteProduct(ctx context.Context, id int64) (*models.APIResponse, error) {
	return a.Client.DeleteProduct(ctx, id)
}

// Orders fetches all orders for the dashboard.
func (a *Admin) Orders(ctx context.Context) ([]models.Order, error) {
	return a.Client.GetOrders(ctx)
}

// SetOrderStatus moves an order to a new status.
func (a *Admin) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.APIResponse, error) {
	return a.Client.UpdateOrderStatus(ctx, id, status)
}

func validateProduct(input models.ProductInput) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	return nil
}
