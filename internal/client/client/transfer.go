package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

// ImportFieldName is the multipart field the service reads the CSV from.
const ImportFieldName = "csvFile"

func (c *HTTPClient) ImportProducts(ctx context.Context, filename string, r io.Reader) (models.ImportSummary, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(ImportFieldName, filename)
	if err != nil {
		return models.ImportSummary{}, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.ImportSummary{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return models.ImportSummary{}, fmt.Errorf("build upload: %w", err)
	}

	body, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/products/import",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		auth:        true,
	})
	if err != nil {
		return models.ImportSummary{}, err
	}

	var res models.ImportResult
	if err := decodeInto(body, &res); err != nil {
		return models.ImportSummary{}, err
	}
	return res.Summary, nil
}

// ExportProducts returns the CSV produced by the service.
func (c *HTTPClient) ExportProducts(ctx context.Context) ([]byte, error) {
	return c.do(ctx, request{method: http.MethodGet, path: "/export-products", auth: true})
}
