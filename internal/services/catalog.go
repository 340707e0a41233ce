package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/senalmaq/storefront/internal/cache"
	"github.com/senalmaq/storefront/internal/catalog"
	"github.com/senalmaq/storefront/internal/slug"
)

// Human-readable messages surfaced when a backing-store subscription fails.
// The projection itself degrades to an empty list (products) or the built-in
// seed (categories); nothing here is fatal.
const (
	productsUnavailableMsg   = "No pudimos cargar los productos."
	categoriesUnavailableMsg = "No pudimos cargar las categorias."
)

const productCacheTTL = 5 * time.Minute

// ProductSource is the slice of the product store the catalog service
// consumes. *db.ProductStore satisfies it.
type ProductSource interface {
	List(ctx context.Context) ([]catalog.Product, error)
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
	Watch(ctx context.Context, onSnapshot func([]catalog.Product), onError func(error)) func()
}

// CategorySource is the slice of the category store the catalog service
// consumes. *db.CategoryStore satisfies it.
type CategorySource interface {
	List(ctx context.Context) ([]catalog.Category, error)
	Watch(ctx context.Context, onSnapshot func([]catalog.Category), onError func(error)) func()
}

// CatalogService owns the in-memory projections of the products and
// categories collections. Each snapshot delivery replaces the projection
// wholesale, so readers always see a complete, consistent list.
type CatalogService struct {
	products   ProductSource
	categories CategorySource
	cache      cache.Provider
	logger     *slog.Logger

	mu            sync.RWMutex
	productList   []catalog.Product
	categoryList  []catalog.Category
	productsErr   string
	categoriesErr string

	stopProducts   func()
	stopCategories func()
}

func NewCatalogService(products ProductSource, categories CategorySource, cacheProvider cache.Provider, logger *slog.Logger) (*CatalogService, error) {
	if products == nil {
		return nil, fmt.Errorf("catalog service: product store is required")
	}
	if categories == nil {
		return nil, fmt.Errorf("catalog service: category store is required")
	}
	if cacheProvider == nil {
		return nil, fmt.Errorf("catalog service: cache provider is required")
	}

	return &CatalogService{
		products:   products,
		categories: categories,
		cache:      cacheProvider,
		logger:     logger,
	}, nil
}

// Start seeds both projections with a one-shot list, then installs the
// collection watchers. The product and category streams are independent;
// either may fail or deliver without the other.
func (s *CatalogService) Start(ctx context.Context) {
	if products, err := s.products.List(ctx); err != nil {
		s.failProducts(err)
	} else {
		s.applyProducts(products)
	}
	if categories, err := s.categories.List(ctx); err != nil {
		s.failCategories(err)
	} else {
		s.applyCategories(categories)
	}

	s.stopProducts = s.products.Watch(ctx, s.applyProducts, s.failProducts)
	s.stopCategories = s.categories.Watch(ctx, s.applyCategories, s.failCategories)
}

func (s *CatalogService) applyProducts(products []catalog.Product) {
	catalog.SortByName(products)
	s.mu.Lock()
	s.productList = products
	s.productsErr = ""
	s.mu.Unlock()
	s.logger.Debug("product projection replaced", "count", len(products))
}

func (s *CatalogService) failProducts(err error) {
	s.mu.Lock()
	s.productList = nil
	s.productsErr = productsUnavailableMsg
	s.mu.Unlock()
	s.logger.Error("product subscription failed", "error", err)
}

func (s *CatalogService) applyCategories(categories []catalog.Category) {
	s.mu.Lock()
	s.categoryList = categories
	s.categoriesErr = ""
	s.mu.Unlock()
	s.logger.Debug("category projection replaced", "count", len(categories))
}

func (s *CatalogService) failCategories(err error) {
	s.mu.Lock()
	s.categoryList = nil
	s.categoriesErr = categoriesUnavailableMsg
	s.mu.Unlock()
	s.logger.Error("category subscription failed", "error", err)
}

// Stop releases both watchers.
func (s *CatalogService) Stop() {
	if s.stopProducts != nil {
		s.stopProducts()
	}
	if s.stopCategories != nil {
		s.stopCategories()
	}
}

// Products returns the current projection plus a display message when the
// subscription is in a failed state.
func (s *CatalogService) Products() ([]catalog.Product, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, len(s.productList))
	copy(out, s.productList)
	return out, s.productsErr
}

// BestSellers returns the flagged subset of the projection.
func (s *CatalogService) BestSellers() ([]catalog.Product, string) {
	products, errMsg := s.Products()
	return catalog.BestSellers(products), errMsg
}

// Categories returns the current category projection, falling back to the
// built-in seed when the collection is empty or its subscription failed.
func (s *CatalogService) Categories() ([]catalog.Category, string) {
	s.mu.RLock()
	list := s.categoryList
	errMsg := s.categoriesErr
	s.mu.RUnlock()

	if len(list) == 0 {
		return catalog.DefaultCategories(), errMsg
	}
	out := make([]catalog.Category, len(list))
	copy(out, list)
	return out, errMsg
}

// CategoryPage resolves the display name for a category URL segment and the
// products belonging to it.
func (s *CatalogService) CategoryPage(categorySlug string) (string, []catalog.Product, string) {
	categories, _ := s.Categories()
	products, errMsg := s.Products()
	name := catalog.ResolveCategoryName(categories, categorySlug)
	return name, catalog.FilterByCategorySlug(products, categorySlug), errMsg
}

// ProductBySlug resolves a product URL segment: the id extracted from the
// segment is looked up in the projection first, then in the point-read
// cache, then in the backing store. Unknown ids yield (nil, nil).
func (s *CatalogService) ProductBySlug(ctx context.Context, productSlug string) (*catalog.Product, error) {
	return s.ProductByID(ctx, slug.ExtractProductID(productSlug))
}

// ProductByID looks a product up by its document id, checking the projection,
// the point-read cache, and finally the backing store. Unknown or empty ids
// yield (nil, nil).
func (s *CatalogService) ProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	if id == "" {
		return nil, nil
	}

	s.mu.RLock()
	for i := range s.productList {
		if s.productList[i].Identity() == id {
			p := s.productList[i]
			s.mu.RUnlock()
			return &p, nil
		}
	}
	s.mu.RUnlock()

	if cached, err := s.cache.Get(ctx, cache.ProductKey(id)); err == nil {
		var p catalog.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return &p, nil
		}
	} else if !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn("product cache read failed", "error", err)
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if encoded, err := json.Marshal(p); err == nil {
		if err := s.cache.Set(ctx, cache.ProductKey(id), string(encoded), productCacheTTL); err != nil {
			s.logger.Warn("product cache write failed", "error", err)
		}
	}

	return p, nil
}

// InvalidateProduct drops the cached point read for a product.
func (s *CatalogService) InvalidateProduct(ctx context.Context, docID string) {
	if err := s.cache.Delete(ctx, cache.ProductKey(docID)); err != nil {
		s.logger.Warn("product cache invalidation failed", "doc_id", docID, "error", err)
	}
}
