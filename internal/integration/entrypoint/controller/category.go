package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/recurring/internal/application/usecase/category"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
// Query: type (expense|income), top_level (true to skip subcategories).
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := category.ListCategoriesInput{
		UserID:       userID,
		TopLevelOnly: ctx.Query("top_level") == "true",
	}
	if categoryType := ctx.Query("type"); categoryType != "" {
		catType := entity.CategoryType(categoryType)
		if !catType.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "type must be expense or income",
				Code:  string(domainerror.ErrCodeInvalidCategoryType),
			})
			return
		}
		input.CategoryType = &catType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingCategoryFields),
		})
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid parent ID format",
			Code:  string(domainerror.ErrCodeParentNotFound),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		UserID:   userID,
		Name:     req.Name,
		Color:    req.Color,
		Type:     entity.CategoryType(req.Type),
		ParentID: parentID,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(ctx, "category")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(c.getStatusCodeForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound,
		domainerror.ErrCodeParentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedCategory:
		return http.StatusForbidden
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeCategoryHasChildren:
		return http.StatusConflict
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidColorFormat,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
