package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sserranom/virtualpets-api/internal/api/metrics"
	"github.com/sserranom/virtualpets-api/internal/core/ports"
)

// PetHandler handles HTTP requests for pet operations.
type PetHandler struct {
	service ports.PetService
}

func NewPetHandler(service ports.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// Create handles POST /api/pets.
//
// @Summary      Create a new pet
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPetRequest  true  "Pet details"
// @Success      201   {object}  petResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/pets [post]
func (h *PetHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pet, err := h.service.Create(c.Request().Context(), identity, ports.CreatePetInput{
		Name:        req.Name,
		Type:        req.Type,
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
		HungerLevel: req.HungerLevel,
	})
	if err != nil {
		return err
	}

	metrics.PetsCreatedTotal.WithLabelValues(string(pet.Type)).Inc()

	return c.JSON(http.StatusCreated, toPetResponse(pet))
}

// ListAll handles GET /api/pets/all. The route is admin-gated.
//
// @Summary      Get all pets (admin only)
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   petResponse
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /api/pets/all [get]
func (h *PetHandler) ListAll(c echo.Context) error {
	pets, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPetResponseList(pets))
}

// ListMine handles GET /api/pets/my-pets.
//
// @Summary      Get the authenticated user's pets
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   petResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/pets/my-pets [get]
func (h *PetHandler) ListMine(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	pets, err := h.service.ListMine(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPetResponseList(pets))
}

// Get handles GET /api/pets/:id.
//
// @Summary      Get pet by ID
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Pet ID"
// @Success      200  {object}  petResponse
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/pets/{id} [get]
func (h *PetHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	pet, err := h.service.Get(c.Request().Context(), c.Param("id"), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPetResponse(pet))
}

// Update handles PUT /api/pets/:id. Only fields present in the body
// overwrite the stored pet.
//
// @Summary      Update pet by ID
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Pet ID"
// @Param        body  body      updatePetRequest  true  "Fields to update"
// @Success      200   {object}  petResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/pets/{id} [put]
func (h *PetHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pet, err := h.service.Update(c.Request().Context(), c.Param("id"), identity, ports.UpdatePetInput{
		Name:        req.Name,
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
		HungerLevel: req.HungerLevel,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPetResponse(pet))
}

// Delete handles DELETE /api/pets/:id.
//
// @Summary      Remove pet by ID
// @Tags         pets
// @Security     BearerAuth
// @Param        id  path  string  true  "Pet ID"
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/pets/{id} [delete]
func (h *PetHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
