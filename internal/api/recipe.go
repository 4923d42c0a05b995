package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// imageField is the multipart field that carries the optional recipe image
const imageField = "image"

var errTooManyImages = errors.New("only one image may be uploaded per request")

// RecipeHandler serves the recipe CRUD endpoints
type RecipeHandler struct {
	recipes service.IRecipeService
	images  service.ImageStore
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipes service.IRecipeService, images service.ImageStore) *RecipeHandler {
	useFormFieldNames()
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// ListRecipes returns every recipe
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// CreateRecipe binds the recipe fields, stores the optional image and inserts the recipe
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := bindRequest(c, &req); err != nil {
		respondMessage(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	image, err := h.storeImage(c)
	if err != nil {
		respondImageError(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), req.Recipe(image))
	if err != nil {
		logOrphan(image, err)
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe applies a partial update. The image changes only when a new file is uploaded.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := bindRequest(c, &req); err != nil {
		respondMessage(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	image, err := h.storeImage(c)
	if err != nil {
		respondImageError(c, err)
		return
	}
	req.Image = image

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		logOrphan(image, err)
		if errors.Is(err, service.ErrRecipeNotFound) {
			respondMessage(c, http.StatusNotFound, "Recipe not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a recipe. Its image file, if any, is left in the store.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			respondMessage(c, http.StatusNotFound, "Recipe not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// bindRequest binds the body into obj. Multipart forms are parsed first so
// that the engine's MaxMultipartMemory decides when uploads spill to disk.
// An empty JSON body binds as {}.
func bindRequest(c *gin.Context, obj interface{}) error {
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		if _, err := c.MultipartForm(); err != nil {
			return err
		}
	}

	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// recipeID parses the :id parameter. An id that is not a UUID cannot match
// any recipe, so it is answered with 404.
func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondMessage(c, http.StatusNotFound, "Recipe not found")
		return uuid.Nil, false
	}
	return id, true
}

// storeImage saves the uploaded image, if any, and returns its served path.
// Non-multipart requests never carry an image.
func (h *RecipeHandler) storeImage(c *gin.Context) (*string, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, nil
	}

	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(c.Request.MultipartForm.File[imageField]) > 1 {
		return nil, errTooManyImages
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name, err := h.images.Save(c.Request.Context(), fh.Filename, f, fh.Size)
	if err != nil {
		return nil, err
	}

	logging.Debug().Str("file", name).Str("backend", h.images.Backend()).Int64("size", fh.Size).Msg("Stored recipe image")
	path := service.ImagePath(name)
	return &path, nil
}

func respondImageError(c *gin.Context, err error) {
	if errors.Is(err, errTooManyImages) {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}

// logOrphan records an image that was stored for a request whose database
// write then failed. The file is not removed.
func logOrphan(image *string, err error) {
	if image == nil {
		return
	}
	logging.Warn().Err(err).Str("image", *image).Msg("Stored image left without a recipe")
}
