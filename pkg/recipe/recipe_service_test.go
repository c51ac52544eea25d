package recipe

import (
	"bytes"
	"context"
	"errors"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/pkg/ingredient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStorage struct {
	uploads []string
	deleted []string
	failing bool
}

const fakeBucketURL = "https://bucket.test/"

func (f *fakeStorage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error) {
	if f.failing {
		return "", errors.New("storage unavailable")
	}
	key := folder + "/" + fileName + filepath.Ext(file.Filename)
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeStorage) UpdateFile(objectKey string, file *multipart.FileHeader, allowedExt ...string) (string, error) {
	if f.failing {
		return "", errors.New("storage unavailable")
	}
	f.uploads = append(f.uploads, objectKey)
	return objectKey, nil
}

func (f *fakeStorage) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return fakeBucketURL + objectKey
}

func (f *fakeStorage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeBucketURL) {
		return ""
	}
	return strings.TrimPrefix(link, fakeBucketURL)
}

type testEnv struct {
	db      *gorm.DB
	repo    RecipeRepository
	service RecipeService
	s3      *fakeStorage
	owner   *entities.User
	other   *entities.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Ingredient{}, &entities.Recipe{}))

	owner := &entities.User{Username: "chef", Password: "x", Role: domain.RoleUser}
	other := &entities.User{Username: "guest", Password: "x", Role: domain.RoleUser}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	s3 := &fakeStorage{}
	repo := NewRecipeRepository(db, ingredient.NewIngredientRepository(db))
	return &testEnv{
		db:      db,
		repo:    repo,
		service: NewRecipeService(repo, s3, time.UTC),
		s3:      s3,
		owner:   owner,
		other:   other,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func (e *testEnv) create(t *testing.T, name string, cookingTime int, ingredients string) domain.RecipeDetail {
	t.Helper()
	res, err := e.service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        name,
		CookingTime: intPtr(cookingTime),
		Ingredients: ingredients,
	}, e.owner.ID.String())
	require.NoError(t, err)
	return res
}

func TestCreateRecipe_RoundTrip(t *testing.T) {
	env := newTestEnv(t)

	created := env.create(t, "Pancakes", 5, "a,b,c,d")

	got, err := env.service.GetRecipeDetail(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyMedium, got.Difficulty)
	assert.Equal(t, domain.DifficultyMedium, got.CalculatedDifficulty)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, got.Ingredients)
	assert.Equal(t, "chef", got.CreatedBy)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateRecipe_SharesIngredients(t *testing.T) {
	env := newTestEnv(t)

	first := env.create(t, "Omelette", 5, "eggs, milk, eggs")
	second := env.create(t, "Custard", 30, "eggs, milk, eggs")

	assert.ElementsMatch(t, []string{"eggs", "milk"}, first.Ingredients)
	assert.ElementsMatch(t, []string{"eggs", "milk"}, second.Ingredients)

	var eggs []entities.Ingredient
	require.NoError(t, env.db.Where("name = ?", "eggs").Find(&eggs).Error)
	assert.Len(t, eggs, 1)

	var links int64
	require.NoError(t, env.db.Table("recipe_ingredients").Where("ingredient_id = ?", eggs[0].ID).Count(&links).Error)
	assert.Equal(t, int64(2), links)
}

func TestCreateRecipe_WithoutIngredients(t *testing.T) {
	env := newTestEnv(t)

	created := env.create(t, "Boiled Water", 12, " , ")
	assert.Empty(t, created.Ingredients)
	assert.Equal(t, domain.DifficultyIntermediate, created.Difficulty)
}

func TestCreateRecipe_InvalidUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Toast",
		CookingTime: intPtr(3),
	}, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestUpdateRecipe_RecomputesDifficulty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.create(t, "Salad", 5, "lettuce, tomato")
	require.Equal(t, domain.DifficultyEasy, created.Difficulty)

	updated, err := env.service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		CookingTime: intPtr(20),
	}, env.owner.ID.String(), domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyIntermediate, updated.Difficulty)
	assert.ElementsMatch(t, []string{"lettuce", "tomato"}, updated.Ingredients)

	updated, err = env.service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Ingredients: strPtr("lettuce, tomato, cucumber, feta, olives"),
	}, env.owner.ID.String(), domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyHard, updated.Difficulty)
	assert.Len(t, updated.Ingredients, 5)

	updated, err = env.service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Name:        strPtr("Quick Salad"),
		CookingTime: intPtr(2),
		Ingredients: strPtr("lettuce"),
	}, env.owner.ID.String(), domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "Quick Salad", updated.Name)
	assert.Equal(t, domain.DifficultyEasy, updated.Difficulty)
	assert.Equal(t, []string{"lettuce"}, updated.Ingredients)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	// replaced ingredients stay in the registry
	var count int64
	require.NoError(t, env.db.Model(&entities.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestUpdateRecipe_OnlyOwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created := env.create(t, "Stew", 60, "beef")

	_, err := env.service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Name: strPtr("Not Mine"),
	}, env.other.ID.String(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	updated, err := env.service.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Name: strPtr("Moderated Stew"),
	}, env.other.ID.String(), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Moderated Stew", updated.Name)
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.UpdateRecipe(context.Background(), "5b0c8f8e-1d1c-4c1c-9c1c-000000000000", domain.UpdateRecipeRequest{},
		env.owner.ID.String(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = env.service.GetRecipeDetail(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestSaveRecipe_RollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.db.Migrator().DropTable("recipe_ingredients"))

	recipe := &entities.Recipe{Name: "Broken", CookingTime: 5, CreatedByID: env.owner.ID}
	err := env.repo.SaveRecipe(ctx, recipe, []string{"ghost"}, true)
	require.Error(t, err)

	var recipes, ingredients int64
	require.NoError(t, env.db.Model(&entities.Recipe{}).Count(&recipes).Error)
	require.NoError(t, env.db.Model(&entities.Ingredient{}).Count(&ingredients).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, ingredients)
}

func TestRefreshDifficulty_OnlyWritesChanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.create(t, "Toast", 3, "bread, butter")
	recipe, err := env.repo.GetRecipeByID(ctx, created.ID)
	require.NoError(t, err)

	// simulate a stale cached label
	require.NoError(t, env.db.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Update("difficulty", domain.DifficultyHard).Error)
	recipe.Difficulty = domain.DifficultyHard

	require.NoError(t, env.repo.RefreshDifficulty(ctx, nil, recipe))
	assert.Equal(t, domain.DifficultyEasy, recipe.Difficulty)

	stored, err := env.repo.GetRecipeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyEasy, stored.Difficulty)
}

func TestDeleteRecipe_KeepsIngredients(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created := env.create(t, "Tea", 4, "water, tea leaves")

	err := env.service.DeleteRecipe(ctx, created.ID, env.other.ID.String(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	require.NoError(t, env.service.DeleteRecipe(ctx, created.ID, env.owner.ID.String(), domain.RoleUser))

	_, err = env.service.GetRecipeDetail(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	var ingredients, links int64
	require.NoError(t, env.db.Model(&entities.Ingredient{}).Count(&ingredients).Error)
	require.NoError(t, env.db.Table("recipe_ingredients").Count(&links).Error)
	assert.Equal(t, int64(2), ingredients)
	assert.Zero(t, links)
}

func newFileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func TestUploadRecipeImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created := env.create(t, "Pizza", 25, "dough, tomato, cheese")

	res, err := env.service.UploadRecipeImage(ctx, domain.UploadRecipeImageRequest{
		RecipeID: created.ID,
		Image:    newFileHeader(t, "pizza.png"),
	}, env.owner.ID.String(), domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, fakeBucketURL+"recipes/recipe-"+created.ID+".png", res.ImageURL)

	stored, err := env.service.GetRecipeDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ImageURL, stored.ImageURL)

	// second upload overwrites the same object
	_, err = env.service.UploadRecipeImage(ctx, domain.UploadRecipeImageRequest{
		RecipeID: created.ID,
		Image:    newFileHeader(t, "pizza.png"),
	}, env.owner.ID.String(), domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, []string{"recipes/recipe-" + created.ID + ".png", "recipes/recipe-" + created.ID + ".png"}, env.s3.uploads)

	require.NoError(t, env.service.DeleteRecipe(ctx, created.ID, env.owner.ID.String(), domain.RoleUser))
	assert.Equal(t, []string{"recipes/recipe-" + created.ID + ".png"}, env.s3.deleted)
}

func TestUploadRecipeImage_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.s3.failing = true
	created := env.create(t, "Pizza", 25, "dough")

	_, err := env.service.UploadRecipeImage(context.Background(), domain.UploadRecipeImageRequest{
		RecipeID: created.ID,
		Image:    newFileHeader(t, "pizza.png"),
	}, env.owner.ID.String(), domain.RoleUser)
	require.Error(t, err)

	stored, err := env.service.GetRecipeDetail(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ImageURL)
}

func TestSearchRecipes_UsesOneSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.create(t, "Bread", 60, "Flour")
	env.create(t, "Test Soup", 5, "Salt, Pepper")

	res, err := env.service.SearchRecipes(ctx, domain.SearchRecipeRequest{Query: "Salt", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Test Soup", res.Recipes[0].Name)
	assert.Equal(t, int64(1), res.Pagination.Total)

	// reports ignore the search filters
	require.NotNil(t, res.Reports.TopIngredients)
	assert.Len(t, res.Reports.TopIngredients, 3)
	assert.Equal(t, []domain.LabelCount{
		{Label: domain.DifficultyEasy, Count: 1},
		{Label: domain.DifficultyIntermediate, Count: 1},
	}, res.Reports.DifficultyDistribution)
	require.Len(t, res.Reports.CreationTrend, 1)
	assert.Equal(t, 2, res.Reports.CreationTrend[0].Count)
}

func TestSearchRecipes_FailsOpenAndPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		env.create(t, name, 5, "salt")
	}

	res, err := env.service.SearchRecipes(ctx, domain.SearchRecipeRequest{
		Difficulty: "Legendary",
		Page:       2,
		Limit:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, "", res.Difficulty)
	assert.Equal(t, int64(3), res.Pagination.Total)
	assert.Equal(t, int64(2), res.Pagination.TotalPages)
	assert.Len(t, res.Recipes, 1)

	res, err = env.service.SearchRecipes(ctx, domain.SearchRecipeRequest{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Recipes)
}

func TestPagingClampsHugeValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		env.create(t, name, 5, "salt")
	}

	var res domain.SearchRecipeResponse
	var err error
	require.NotPanics(t, func() {
		res, err = env.service.SearchRecipes(ctx, domain.SearchRecipeRequest{Page: 2, Limit: math.MaxInt})
	})
	require.NoError(t, err)
	assert.Empty(t, res.Recipes)
	assert.Equal(t, domain.MaxPageLimit, res.Pagination.Limit)
	assert.Equal(t, int64(1), res.Pagination.TotalPages)

	res, err = env.service.SearchRecipes(ctx, domain.SearchRecipeRequest{Page: math.MaxInt, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Empty(t, res.Recipes)

	res, err = env.service.SearchRecipes(ctx, domain.SearchRecipeRequest{Page: 1, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 3)

	recipes, total, err := env.service.GetRecipes(ctx, math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, recipes)

	recipes, _, err = env.service.FilterRecipes(ctx, domain.AdminRecipeFilter{Page: math.MaxInt, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestGetReports_Empty(t *testing.T) {
	env := newTestEnv(t)

	reports, err := env.service.GetReports(context.Background())
	require.NoError(t, err)
	assert.Nil(t, reports.TopIngredients)
	assert.Nil(t, reports.DifficultyDistribution)
	assert.Nil(t, reports.CreationTrend)

	var buf bytes.Buffer
	assert.ErrorIs(t, env.service.RenderChart(context.Background(), ChartTrend, &buf), domain.ErrChartEmpty)
	assert.ErrorIs(t, env.service.RenderChart(context.Background(), "pie-in-the-sky", &buf), domain.ErrChartNotFound)
}

func TestFilterRecipes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.create(t, "Bread", 60, "Flour")
	env.create(t, "Test Soup", 5, "Salt, Pepper")

	res, total, err := env.service.FilterRecipes(ctx, domain.AdminRecipeFilter{Search: "pepper", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, res, 1)
	assert.Equal(t, "Test Soup", res[0].Name)

	res, total, err = env.service.FilterRecipes(ctx, domain.AdminRecipeFilter{
		Difficulty: domain.DifficultyIntermediate,
		CreatedBy:  env.owner.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Bread", res[0].Name)

	_, total, err = env.service.FilterRecipes(ctx, domain.AdminRecipeFilter{CreatedBy: env.other.ID.String()})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, _, err = env.service.FilterRecipes(ctx, domain.AdminRecipeFilter{CreatedBy: "nope"})
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}
