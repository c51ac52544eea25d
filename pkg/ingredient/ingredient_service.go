package ingredient

import (
	"context"

	"recipe-catalog/domain"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, search string, page, limit int) ([]domain.IngredientUsage, int64, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
	}
}

func (s *ingredientService) GetIngredients(ctx context.Context, search string, page, limit int) ([]domain.IngredientUsage, int64, error) {
	rows, count, err := s.ingredientRepository.GetIngredients(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []domain.IngredientUsage{}
	}
	return rows, count, nil
}
