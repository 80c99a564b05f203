package catalog

import (
	"context"
	"strings"

	"github.com/angelmondragon/orderdesk/pkg/commerce"
	"github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/angelmondragon/orderdesk/pkg/logger"
)

type remoteClient interface {
	ListBrands(ctx context.Context) ([]commerce.Brand, error)
	CreateBrand(ctx context.Context, params commerce.BrandCreateParams) (*commerce.Brand, error)
	DeleteBrand(ctx context.Context, brandID string) error
	ListCategories(ctx context.Context) ([]commerce.Category, error)
	ListProducts(ctx context.Context) ([]commerce.Product, error)
	CreateProduct(ctx context.Context, params commerce.ProductCreateParams) (*commerce.Product, error)
	UpdateProduct(ctx context.Context, productID string, params commerce.ProductUpdateParams) (*commerce.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// Service exposes the brand, category, and product catalog. Reads and writes
// pass straight through to the commerce backend after local validation; the
// backend owns all catalog state.
type Service interface {
	ListBrands(ctx context.Context) ([]commerce.Brand, error)
	CreateBrand(ctx context.Context, params commerce.BrandCreateParams) (*commerce.Brand, error)
	DeleteBrand(ctx context.Context, brandID string) error
	ListCategories(ctx context.Context) ([]commerce.Category, error)
	ListProducts(ctx context.Context) ([]commerce.Product, error)
	CreateProduct(ctx context.Context, params commerce.ProductCreateParams) (*commerce.Product, error)
	UpdateProduct(ctx context.Context, productID string, params commerce.ProductUpdateParams) (*commerce.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type service struct {
	remote remoteClient
	logg   *logger.Logger
}

func NewService(remote remoteClient, logg *logger.Logger) (Service, error) {
	if remote == nil {
		return nil, errors.New(errors.CodeInternal, "catalog: remote client is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "catalog: logger is required")
	}
	return &service{remote: remote, logg: logg}, nil
}

func (s *service) ListBrands(ctx context.Context) ([]commerce.Brand, error) {
	return s.remote.ListBrands(ctx)
}

func (s *service) CreateBrand(ctx context.Context, params commerce.BrandCreateParams) (*commerce.Brand, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return nil, errors.New(errors.CodeValidation, "brand name is required")
	}
	brand, err := s.remote.CreateBrand(ctx, params)
	if err != nil {
		return nil, err
	}
	s.logg.Info(ctx, "brand created")
	return brand, nil
}

func (s *service) DeleteBrand(ctx context.Context, brandID string) error {
	if strings.TrimSpace(brandID) == "" {
		return errors.New(errors.CodeValidation, "brand id is required")
	}
	return s.remote.DeleteBrand(ctx, brandID)
}

func (s *service) ListCategories(ctx context.Context) ([]commerce.Category, error) {
	return s.remote.ListCategories(ctx)
}

func (s *service) ListProducts(ctx context.Context) ([]commerce.Product, error) {
	return s.remote.ListProducts(ctx)
}

func (s *service) CreateProduct(ctx context.Context, params commerce.ProductCreateParams) (*commerce.Product, error) {
	params.Name = strings.TrimSpace(params.Name)
	switch {
	case params.Name == "":
		return nil, errors.New(errors.CodeValidation, "product name is required")
	case params.Price <= 0:
		return nil, errors.New(errors.CodeValidation, "product price must be greater than zero")
	case strings.TrimSpace(params.CategoryID) == "":
		return nil, errors.New(errors.CodeValidation, "product category is required")
	}
	product, err := s.remote.CreateProduct(ctx, params)
	if err != nil {
		return nil, err
	}
	s.logg.Info(ctx, "product created")
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID string, params commerce.ProductUpdateParams) (*commerce.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New(errors.CodeValidation, "product id is required")
	}
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, errors.New(errors.CodeValidation, "product name cannot be blank")
	}
	if params.Price != nil && *params.Price <= 0 {
		return nil, errors.New(errors.CodeValidation, "product price must be greater than zero")
	}
	return s.remote.UpdateProduct(ctx, productID, params)
}

func (s *service) DeleteProduct(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errors.New(errors.CodeValidation, "product id is required")
	}
	return s.remote.DeleteProduct(ctx, productID)
}
