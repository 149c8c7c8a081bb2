package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

// Client is the remote inventory API.
type Client interface {
	Login(ctx context.Context, username, password string) (models.AuthResult, error)
	Register(ctx context.Context, username, email, password string) (models.AuthResult, error)

	ListProducts(ctx context.Context, q models.ListQuery) (models.ProductPage, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ProductHistory(ctx context.Context, id string) ([]models.HistoryRecord, error)
	Categories(ctx context.Context) ([]string, error)

	ImportProducts(ctx context.Context, filename string, r io.Reader) (models.ImportSummary, error)
	ExportProducts(ctx context.Context) ([]byte, error)
}

// TokenSource yields the current session token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// UnauthorizedHandler is called when the server rejects token. It runs
// before the failing call returns.
type UnauthorizedHandler func(ctx context.Context, token string)

type noToken struct{}

func (noToken) Token() string { return "" }
