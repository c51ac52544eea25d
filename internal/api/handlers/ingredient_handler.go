package handlers

import (
	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/ingredient"

	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
	}
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	page, limit := pagination(c)

	ingredients, count, err := h.ingredientService.GetIngredients(c.Context(), c.Query("search", ""), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"ingredients": ingredients,
		"pagination":  domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}
