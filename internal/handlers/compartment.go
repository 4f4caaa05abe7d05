package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/smartlocker-backend/internal/services"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

type CompartmentHandler struct {
	compartmentService services.CompartmentService
}

func NewCompartmentHandler(compartmentService services.CompartmentService) *CompartmentHandler {
	return &CompartmentHandler{compartmentService: compartmentService}
}

func (ch *CompartmentHandler) Create(c *gin.Context) {
	var req struct {
		Number   string  `json:"number"`
		Size     float64 `json:"size"`
		Status   string  `json:"status"`
		LockerID string  `json:"locker_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	lockerID, err := uuid.Parse(req.LockerID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	compartment := types.Compartment{
		Number:   req.Number,
		Size:     req.Size,
		Status:   types.LockerStatus(req.Status),
		LockerID: lockerID,
	}
	created, err := ch.compartmentService.Create(c.Request.Context(), &compartment)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ch *CompartmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if lockerParam := c.Query("locker_id"); lockerParam != "" {
		lockerID, err := uuid.Parse(lockerParam)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_id", err)
			return
		}
		compartments, err := ch.compartmentService.ListByLocker(ctx, lockerID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, compartments)
		return
	}
	compartments, err := ch.compartmentService.List(ctx)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, compartments)
}

func (ch *CompartmentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	compartment, err := ch.compartmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, compartment)
}

func (ch *CompartmentHandler) SetOccupied(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Occupied bool `json:"occupied"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	compartment, err := ch.compartmentService.SetOccupied(c.Request.Context(), id, req.Occupied)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, compartment)
}

func (ch *CompartmentHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.compartmentService.Remove(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
