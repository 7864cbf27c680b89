package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanspot/internal/domain"
	"cleanspot/internal/service"
)

// MountSpots registers spot lifecycle and cleanup recording on the public
// group.
func (h *Handler) MountSpots(api *gin.RouterGroup) {
	ez := NewEZ(api)

	// No "required" on the coordinates: zero is a valid lat/lng, range
	// checking happens in the service.
	type createIn struct {
		Lat        float64 `json:"lat"`
		Lng        float64 `json:"lng"`
		ReportedBy string  `json:"reportedBy" binding:"required"`
	}
	Register(ez, Action[createIn, domain.Spot]{
		Method: http.MethodPost,
		Path:   "/spots",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *createIn) (domain.Spot, error) {
			return h.svc.CreateSpot(c.Request.Context(), in.Lat, in.Lng, in.ReportedBy)
		},
	})

	type updateIn struct {
		Lat         *float64 `json:"lat"`
		Lng         *float64 `json:"lng"`
		BeforeImage *string  `json:"beforeImage"`
		AfterImage  *string  `json:"afterImage"`
	}
	Register(ez, Action[updateIn, domain.Spot]{
		Method: http.MethodPut,
		Path:   "/spots/:id",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *updateIn) (domain.Spot, error) {
			return h.svc.UpdateSpot(c.Request.Context(), c.Param("id"), service.UpdateSpotParams{
				Lat:         in.Lat,
				Lng:         in.Lng,
				BeforeImage: in.BeforeImage,
				AfterImage:  in.AfterImage,
			})
		},
	})

	Register(ez, Action[struct{}, []domain.Spot]{
		Method: http.MethodGet,
		Path:   "/spots",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Spot, error) {
			return h.svc.AllSpots(c.Request.Context())
		},
	})

	// The AI verification decision is made here against the configured
	// approval rate and passed down as a boolean.
	type cleanupIn struct {
		UserID      string `json:"userId"      binding:"required"`
		BeforeImage string `json:"beforeImage" binding:"required"`
		AfterImage  string `json:"afterImage"  binding:"required"`
	}
	Register(ez, Action[cleanupIn, service.CleanupResult]{
		Method: http.MethodPost,
		Path:   "/spots/:id/cleanup",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *cleanupIn) (service.CleanupResult, error) {
			settings, err := h.svc.GetSettings(c.Request.Context())
			if err != nil {
				return service.CleanupResult{}, err
			}
			approved, reason := h.approver.Approve(settings.AIApprovalRate)
			return h.svc.RecordCleanup(c.Request.Context(), service.CleanupParams{
				SpotID:      c.Param("id"),
				UserID:      in.UserID,
				BeforeImage: in.BeforeImage,
				AfterImage:  in.AfterImage,
				Approved:    approved,
				Reason:      reason,
			})
		},
	})
}
