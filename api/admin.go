package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/AminovSarvarbek/telegramshopfront/models"
)

// AddProduct creates a catalog entry. The form travels as multipart since
// it may carry image bytes.
func (c *Client) AddProduct(ctx context.Context, input models.ProductInput) (*models.APIResponse, error) {
	body, contentType, err := encodeProductForm(input)
	if err != nil {
		return nil, err
	}
	var resp models.APIResponse
	if err := c.do(ctx, http.MethodPost, "/admin/products", body, contentType, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProduct updates an existing catalog entry.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input models.ProductInput) (*models.APIResponse, error) {
	body, contentType, err := encodeProductForm(input)
	if err != nil {
		return nil, err
	}
	var resp models.APIResponse
	path := fmt.Sprintf("/admin/products/%d", id)
	if err := c.do(ctx, http.MethodPut, path, body, contentType, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, id int64) (*models.APIResponse, error) {
	var resp models.APIResponse
	path := fmt.Sprintf("/admin/products/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrders fetches all orders for the admin dashboard.
func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders", nil, "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.APIResponse, error) {
	var resp models.APIResponse
	path := fmt.Sprintf("/admin/orders/%s/status", id)
	body := map[string]models.OrderStatus{"status": status}
	if err := c.putJSON(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// encodeProductForm builds the multipart body: name, description, price as
// a major-unit decimal string, and either the image bytes or — when an
// existing image is kept on edit — its URL.
func encodeProductForm(input models.ProductInput) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("name", input.Name); err != nil {
		return nil, "", fmt.Errorf("encode product form: %w", err)
	}
	if err := writer.WriteField("description", input.Description); err != nil {
		return nil, "", fmt.Errorf("encode product form: %w", err)
	}
	if err := writer.WriteField("price", input.Price.Decimal().String()); err != nil {
		return nil, "", fmt.Errorf("encode product form: %w", err)
	}

	switch {
	case len(input.ImageData) > 0:
		name := input.ImageName
		if name == "" {
			name = "image"
		}
		part, err := writer.CreateFormFile("image", name)
		if err != nil {
			return nil, "", fmt.Errorf("encode product image: %w", err)
		}
		if _, err := part.Write(input.ImageData); err != nil {
			return nil, "", fmt.Errorf("encode product image: %w", err)
		}
	case input.ImageURL != "":
		if err := writer.WriteField("imageUrl", input.ImageURL); err != nil {
			return nil, "", fmt.Errorf("encode product form: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("encode product form: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
