package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/smartlocker-backend/internal/services"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

type LockerHandler struct {
	lockerService services.LockerService
}

func NewLockerHandler(lockerService services.LockerService) *LockerHandler {
	return &LockerHandler{lockerService: lockerService}
}

func (lh *LockerHandler) Register(c *gin.Context) {
	var req struct {
		Number       string `json:"number"`
		Status       string `json:"status"`
		Location     string `json:"location"`
		Observations string `json:"observations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	locker := types.Locker{
		Number:       req.Number,
		Status:       types.LockerStatus(req.Status),
		Location:     req.Location,
		Observations: req.Observations,
	}
	created, err := lh.lockerService.Register(c.Request.Context(), &locker)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

// List supports optional status and location query filters.
func (lh *LockerHandler) List(c *gin.Context) {
	status := c.Query("status")
	location := c.Query("location")
	ctx := c.Request.Context()

	var (
		lockers []*types.Locker
		err     error
	)
	switch {
	case status != "" && location != "":
		lockers, err = lh.lockerService.ListByStatusAndLocation(ctx, types.LockerStatus(status), location)
	case status != "":
		lockers, err = lh.lockerService.ListByStatus(ctx, types.LockerStatus(status))
	case location != "":
		lockers, err = lh.lockerService.ListByLocation(ctx, location)
	default:
		lockers, err = lh.lockerService.List(ctx)
	}
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, lockers)
}

func (lh *LockerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	locker, err := lh.lockerService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, locker)
}

func (lh *LockerHandler) GetByNumber(c *gin.Context) {
	locker, err := lh.lockerService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, locker)
}

func (lh *LockerHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	locker, err := lh.lockerService.Transition(c.Request.Context(), id, types.LockerStatus(req.Status))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, locker)
}

func (lh *LockerHandler) UpdateLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	locker, err := lh.lockerService.UpdateLocation(c.Request.Context(), id, req.Location)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, locker)
}

func (lh *LockerHandler) UpdateObservations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Observations string `json:"observations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	locker, err := lh.lockerService.UpdateObservations(c.Request.Context(), id, req.Observations)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, locker)
}

func (lh *LockerHandler) CountByStatus(c *gin.Context) {
	count, err := lh.lockerService.CountByStatus(c.Request.Context(), types.LockerStatus(c.Query("status")))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}

func (lh *LockerHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := lh.lockerService.Remove(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
