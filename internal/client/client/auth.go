package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", models.Credentials{Username: username, Password: password})
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (models.AuthResult, error) {
	return c.authenticate(ctx, "/auth/register", models.Credentials{Username: username, Email: email, Password: password})
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, creds models.Credentials) (models.AuthResult, error) {
	var res models.AuthResult

	req, err := jsonRequest(http.MethodPost, path, creds, false)
	if err != nil {
		return res, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return res, err
	}

	if err := decodeInto(body, &res); err != nil {
		return res, err
	}
	if res.Token == "" {
		return res, &APIError{Status: http.StatusOK, Message: "server returned no token"}
	}
	return res, nil
}
