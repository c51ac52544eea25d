package recipe

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/utils/chart"
	"recipe-catalog/internal/utils/logger"
	"recipe-catalog/internal/utils/metrics"
	"recipe-catalog/internal/utils/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ChartTopIngredients = "top-ingredients"
	ChartDifficulty     = "difficulty"
	ChartTrend          = "trend"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID, role string) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, id string, userID, role string) error
		UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, userID, role string) (domain.RecipeDetail, error)
		GetRecipeDetail(ctx context.Context, id string) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, page, limit int) ([]domain.Recipe, int64, error)
		FilterRecipes(ctx context.Context, filter domain.AdminRecipeFilter) ([]domain.Recipe, int64, error)
		SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest) (domain.SearchRecipeResponse, error)
		GetReports(ctx context.Context) (domain.RecipeReports, error)
		RenderChart(ctx context.Context, name string, w io.Writer) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
		loc              *time.Location
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3, loc *time.Location) RecipeService {
	if loc == nil {
		loc = time.UTC
	}
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
		loc:              loc,
	}
}

func ToRecipeResponse(r *entities.Recipe) domain.Recipe {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing != nil {
			names = append(names, ing.Name)
		}
	}
	sort.Strings(names)

	createdBy := r.CreatedByID.String()
	if r.CreatedBy != nil {
		createdBy = r.CreatedBy.Username
	}

	return domain.Recipe{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		CookingTime: r.CookingTime,
		Difficulty:  r.Difficulty,
		StaticImage: r.StaticImage,
		ImageURL:    r.ImageURL,
		Ingredients: names,
		CreatedBy:   createdBy,
		CreatedAt:   r.CreatedAt,
	}
}

func toRecipeDetail(r *entities.Recipe) domain.RecipeDetail {
	return domain.RecipeDetail{
		Recipe:               ToRecipeResponse(r),
		CalculatedDifficulty: Classify(r.CookingTime, len(r.Ingredients)),
	}
}

func toRecipeResponses(recipes []entities.Recipe) []domain.Recipe {
	res := make([]domain.Recipe, 0, len(recipes))
	for i := range recipes {
		res = append(res, ToRecipeResponse(&recipes[i]))
	}
	return res
}

func canModify(recipe *entities.Recipe, userID, role string) bool {
	return role == domain.RoleAdmin || recipe.CreatedByID.String() == userID
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		Name:        req.Name,
		Description: req.Description,
		CookingTime: *req.CookingTime,
		StaticImage: req.StaticImage,
		CreatedByID: userUUID,
	}

	names := ParseIngredientNames(req.Ingredients)
	if err := s.recipeRepository.SaveRecipe(ctx, recipe, names, true); err != nil {
		return domain.RecipeDetail{}, err
	}
	metrics.RecipesSavedTotal.WithLabelValues("create", recipe.Difficulty).Inc()

	return s.GetRecipeDetail(ctx, recipe.ID.String())
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID, role string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if !canModify(recipe, userID, role) {
		return domain.RecipeDetail{}, domain.ErrUnauthorizedRecipeAccess
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	if req.StaticImage != nil {
		recipe.StaticImage = *req.StaticImage
	}

	var names []string
	replace := req.Ingredients != nil
	if replace {
		names = ParseIngredientNames(*req.Ingredients)
	}

	if err := s.recipeRepository.SaveRecipe(ctx, recipe, names, replace); err != nil {
		return domain.RecipeDetail{}, err
	}
	metrics.RecipesSavedTotal.WithLabelValues("update", recipe.Difficulty).Inc()

	return s.GetRecipeDetail(ctx, recipe.ID.String())
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(recipe, userID, role) {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe); err != nil {
		return err
	}

	if recipe.ImageURL != "" && s.s3 != nil {
		if key := s.s3.GetObjectKeyFromLink(recipe.ImageURL); key != "" {
			if err := s.s3.DeleteFile(key); err != nil {
				logger.L().Warn("delete recipe image", zap.String("recipe_id", id), zap.Error(err))
			}
		}
	}
	return nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, userID, role string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, req.RecipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if !canModify(recipe, userID, role) {
		return domain.RecipeDetail{}, domain.ErrUnauthorizedRecipeAccess
	}

	fileName := fmt.Sprintf("recipe-%s", recipe.ID.String())
	var objectKey string
	if existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL); existingKey != "" {
		objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "recipes", storage.AllowImage...)
	}
	if err != nil {
		logger.L().Error("upload recipe image", zap.String("recipe_id", req.RecipeID), zap.Error(err))
		return domain.RecipeDetail{}, err
	}

	recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateImageURL(ctx, recipe.ID.String(), recipe.ImageURL); err != nil {
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, page, limit int) ([]domain.Recipe, int64, error) {
	page, limit = domain.NormalizePage(page, limit)
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toRecipeResponses(recipes), count, nil
}

func (s *recipeService) FilterRecipes(ctx context.Context, filter domain.AdminRecipeFilter) ([]domain.Recipe, int64, error) {
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)
	if !domain.IsDifficulty(filter.Difficulty) {
		filter.Difficulty = ""
	}
	if filter.CreatedBy != "" {
		if _, err := uuid.Parse(filter.CreatedBy); err != nil {
			return nil, 0, domain.ErrParseUUID
		}
	}

	recipes, count, err := s.recipeRepository.FilterRecipes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toRecipeResponses(recipes), count, nil
}

// SearchRecipes filters one snapshot of the catalog and builds the reports
// from that same snapshot, unfiltered.
func (s *recipeService) SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest) (domain.SearchRecipeResponse, error) {
	all, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return domain.SearchRecipeResponse{}, err
	}
	metrics.RecipeSearchesTotal.Inc()

	req.Page, req.Limit = domain.NormalizePage(req.Page, req.Limit)

	query, difficulty := NormalizeSearch(req.Query, req.Difficulty)
	matched := Search(all, query, difficulty, req.ShowAll)

	total := int64(len(matched))
	start := min(domain.PageOffset(req.Page, req.Limit), len(matched))
	end := start + min(req.Limit, len(matched)-start)

	return domain.SearchRecipeResponse{
		Recipes:    toRecipeResponses(matched[start:end]),
		Query:      query,
		Difficulty: difficulty,
		ShowAll:    req.ShowAll,
		Pagination: domain.NewPagination(req.Page, req.Limit, total),
		Reports:    BuildReports(all, s.loc),
	}, nil
}

func (s *recipeService) GetReports(ctx context.Context) (domain.RecipeReports, error) {
	all, err := s.recipeRepository.GetAllRecipes(ctx)
	if err != nil {
		return domain.RecipeReports{}, err
	}
	return BuildReports(all, s.loc), nil
}

func (s *recipeService) RenderChart(ctx context.Context, name string, w io.Writer) error {
	switch name {
	case ChartTopIngredients, ChartDifficulty, ChartTrend:
	default:
		return domain.ErrChartNotFound
	}

	reports, err := s.GetReports(ctx)
	if err != nil {
		return err
	}

	switch name {
	case ChartTopIngredients:
		return chart.TopIngredients(w, reports.TopIngredients)
	case ChartDifficulty:
		return chart.DifficultyDistribution(w, reports.DifficultyDistribution)
	default:
		return chart.CreationTrend(w, reports.CreationTrend)
	}
}
