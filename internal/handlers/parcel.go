package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/smartlocker-backend/internal/services"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

type PackageHandler struct {
	packageService services.PackageService
	lockerService  services.LockerService
}

func NewPackageHandler(packageService services.PackageService, lockerService services.LockerService) *PackageHandler {
	return &PackageHandler{packageService: packageService, lockerService: lockerService}
}

// Receive registers the package and occupies its locker. The locker
// assignment is best-effort after the package is persisted; a failure there
// surfaces to the caller so the doorman can retry against another locker.
func (ph *PackageHandler) Receive(c *gin.Context) {
	var req struct {
		TrackingCode string     `json:"tracking_code"`
		Description  string     `json:"description"`
		Sender       string     `json:"sender"`
		ReceivedAt   *time.Time `json:"received_at"`
		LockerID     string     `json:"locker_id"`
		UserID       string     `json:"user_id"`
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
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	receivedAt := time.Now().UTC()
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}
	pkg := types.Package{
		TrackingCode: req.TrackingCode,
		Description:  req.Description,
		Sender:       req.Sender,
		ReceivedAt:   receivedAt,
		LockerID:     lockerID,
		UserID:       userID,
	}
	created, err := ph.packageService.Receive(c.Request.Context(), &pkg)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if _, err := ph.lockerService.AssignPackage(c.Request.Context(), lockerID, created.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ph *PackageHandler) List(c *gin.Context) {
	packages, err := ph.packageService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, packages)
}

func (ph *PackageHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	pkg, err := ph.packageService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pkg)
}

func (ph *PackageHandler) GetByTrackingCode(c *gin.Context) {
	pkg, err := ph.packageService.GetByTrackingCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pkg)
}

// ConfirmPickup confirms the pickup and frees the locker the package was
// stored in.
func (ph *PackageHandler) ConfirmPickup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	pkg, err := ph.packageService.ConfirmPickup(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if _, err := ph.lockerService.ReleasePackage(c.Request.Context(), pkg.LockerID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pkg)
}

func (ph *PackageHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	pkg, err := ph.packageService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := ph.packageService.Remove(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	if _, err := ph.lockerService.ReleasePackage(c.Request.Context(), pkg.LockerID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
