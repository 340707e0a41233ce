package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"

	"github.com/senalmaq/storefront/internal/catalog"
	"github.com/senalmaq/storefront/internal/db"
	"github.com/senalmaq/storefront/internal/media"
	"github.com/senalmaq/storefront/internal/observability"
)

// AdminService backs the authenticated product management endpoints.
type AdminService struct {
	products *db.ProductStore
	catalog  *CatalogService
	uploader *media.Uploader
	logger   *slog.Logger
}

// NewAdminService wires the product store and optional image uploader. A nil
// uploader disables image uploads but keeps product creation working.
func NewAdminService(products *db.ProductStore, catalogSvc *CatalogService, uploader *media.Uploader, logger *slog.Logger) (*AdminService, error) {
	if products == nil {
		return nil, fmt.Errorf("product store is required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &AdminService{
		products: products,
		catalog:  catalogSvc,
		uploader: uploader,
		logger:   logger,
	}, nil
}

// ProductInput is the admin-supplied portion of a new product.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       int64
	BestSeller  bool
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("product category is required")
	}
	if in.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	return nil
}

// CreateProduct stores a new product document and, when a file is provided,
// uploads its image and writes the resulting URL back onto the document. The
// product exists even if the upload step fails.
func (s *AdminService) CreateProduct(ctx context.Context, in ProductInput, fileName string, file io.Reader) (*catalog.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := catalog.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		BestSeller:  in.BestSeller,
	}

	docID, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = docID
	product.DocID = docID

	meter := observability.MeterFromContext(ctx)
	meter.Count("admin.product.created", 1, sentry.WithAttributes(
		attribute.String("category", product.Category),
	))
	s.logger.Info("product created", "doc_id", docID, "name", product.Name)

	if file != nil {
		if s.uploader == nil {
			return &product, fmt.Errorf("image uploads are not configured")
		}
		imageURL, err := s.uploader.UploadProductImage(ctx, docID, fileName, file)
		if err != nil {
			meter.Count("admin.product.image_failed", 1)
			s.logger.Error("product image upload failed", "doc_id", docID, "error", err)
			return &product, fmt.Errorf("failed to upload product image: %w", err)
		}
		if err := s.products.SetImage(ctx, docID, imageURL); err != nil {
			s.logger.Error("failed to store product image url", "doc_id", docID, "error", err)
			return &product, fmt.Errorf("failed to store product image: %w", err)
		}
		product.Image = imageURL
		product.ImageURL = imageURL
	}

	s.catalog.InvalidateProduct(ctx, docID)
	return &product, nil
}
