package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

func productPath(id string) string {
	return "/products/" + url.PathEscape(id)
}

func (c *HTTPClient) ListProducts(ctx context.Context, q models.ListQuery) (models.ProductPage, error) {
	var page models.ProductPage

	body, err := c.do(ctx, request{method: http.MethodGet, path: "/products", query: q.Values(), auth: true})
	if err != nil {
		return page, err
	}
	if err := decodeInto(body, &page); err != nil {
		return page, err
	}
	return page, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var p models.Product

	body, err := c.do(ctx, request{method: http.MethodGet, path: productPath(id), auth: true})
	if err != nil {
		return p, err
	}
	if err := decodeInto(body, &p); err != nil {
		return p, err
	}
	return p, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	return c.writeProduct(ctx, http.MethodPost, "/products", in)
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	return c.writeProduct(ctx, http.MethodPut, productPath(id), in)
}

func (c *HTTPClient) writeProduct(ctx context.Context, method, path string, in models.ProductInput) (models.Product, error) {
	var p models.Product

	req, err := jsonRequest(method, path, in, true)
	if err != nil {
		return p, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return p, err
	}
	if err := decodeInto(body, &p); err != nil {
		return p, err
	}
	return p, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: productPath(id), auth: true})
	return err
}

func (c *HTTPClient) ProductHistory(ctx context.Context, id string) ([]models.HistoryRecord, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: productPath(id) + "/history", auth: true})
	if err != nil {
		return nil, err
	}

	var records []models.HistoryRecord
	if err := decodeInto(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}
