package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/apperr"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// カタログ側のusecase。注文コアからは「商品が存在して公開中か」
// だけを見られる細い契約。
type ProductUsecase struct {
	products repo.ProductRepository
	log      *zap.Logger
}

// DI
func NewProductUsecase(products repo.ProductRepository, log *zap.Logger) *ProductUsecase {
	return &ProductUsecase{products: products, log: log}
}

type ProductOutput struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
}

func (u *ProductUsecase) List(ctx context.Context) ([]ProductOutput, error) {
	products, err := u.products.ListActive(ctx)
	if err != nil {
		u.log.Error("product listing failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindFetch, "product listing failed", err)
	}

	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}
	return outs, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (ProductOutput, error) {
	if id <= 0 {
		return ProductOutput{}, apperr.New(apperr.KindValidation, "invalid id")
	}

	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, apperr.New(apperr.KindNotFound, "not found")
	}
	if err != nil {
		u.log.Error("product fetch failed", zap.Int64("product_id", id), zap.Error(err))
		return ProductOutput{}, apperr.Wrap(apperr.KindFetch, "product fetch failed", err)
	}
	//非公開も「存在しない扱い」
	if !p.IsActive {
		return ProductOutput{}, apperr.New(apperr.KindNotFound, "not found")
	}

	return toProductOutput(p), nil
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (ProductOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ProductOutput{}, apperr.New(apperr.KindValidation, "name is required")
	}
	if in.Price.IsNegative() {
		return ProductOutput{}, apperr.New(apperr.KindValidation, "invalid price")
	}
	if in.Stock < 0 {
		return ProductOutput{}, apperr.New(apperr.KindValidation, "invalid stock")
	}

	created, err := u.products.Create(ctx, model.Product{
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		IsActive:    true,
	})
	if err != nil {
		u.log.Error("product creation failed", zap.String("name", name), zap.Error(err))
		return ProductOutput{}, apperr.Wrap(apperr.KindCreation, "product creation failed", err)
	}

	return toProductOutput(created), nil
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}
