package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finpet/internal/errors"
	"finpet/internal/pagination"
	"finpet/internal/services"
)

// PetHandler handles FinPet requests.
type PetHandler struct {
	petService   services.PetServicer
	auditService services.AuditServicer
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(petService services.PetServicer, auditService services.AuditServicer) *PetHandler {
	return &PetHandler{petService: petService, auditService: auditService}
}

// RenamePetRequest represents the request payload for renaming the pet
type RenamePetRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// GetPet returns the user's pet
// @Summary     Get the pet
// @Description Get the user's FinPet with its level, XP progress, and growth stage
// @Tags        pet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.FinPet "Pet state"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pet [get]
func (h *PetHandler) GetPet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pet, err := h.petService.GetOrCreatePet(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress := float64(pet.XP) / float64(pet.NextLevelXP)
	c.JSON(http.StatusOK, gin.H{
		"pet":      pet,
		"stage":    pet.Stage(),
		"progress": progress,
	})
}

// RenamePet renames the user's pet
// @Summary     Rename the pet
// @Description Change the FinPet's display name
// @Tags        pet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RenamePetRequest true "New name"
// @Success     200 {object} models.FinPet "Updated pet"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pet/name [put]
func (h *PetHandler) RenamePet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RenamePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	pet, err := h.petService.RenamePet(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "rename_pet", "pet", pet.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"pet": pet})
}

// GetRewards returns the pet's rewards
// @Summary     Get rewards
// @Description Get a paginated list of the pet's earned rewards in award order
// @Tags        pet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Reward] "Paginated rewards"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pet/rewards [get]
func (h *PetHandler) GetRewards(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.petService.GetRewards(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
