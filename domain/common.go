package domain

import (
	"errors"
	"math"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// keeps (page-1)*limit inside int
	maxPage = math.MaxInt / MaxPageLimit
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageSuccessAbout         = "success get about"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

type (
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}

	AboutResponse struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Difficulty  []string `json:"difficulty_levels"`
	}
)

// NormalizePage clamps page to [1, maxPage] and limit to [1, MaxPageLimit].
// A non-positive limit falls back to DefaultPageLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// PageOffset is the number of rows to skip for page.
func PageOffset(page, limit int) int {
	page, limit = NormalizePage(page, limit)
	return (page - 1) * limit
}

func NewPagination(page, limit int, total int64) Pagination {
	page, limit = NormalizePage(page, limit)
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
