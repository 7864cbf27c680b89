package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanspot/internal/domain"
	"cleanspot/internal/service"
)

// MountSystem registers stats, settings and schema routes on the public
// group.
func (h *Handler) MountSystem(api *gin.RouterGroup) {
	ez := NewEZ(api)

	Register(ez, Action[struct{}, service.Stats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.Stats, error) {
			return h.svc.GetStats(c.Request.Context())
		},
	})

	Register(ez, Action[struct{}, domain.Settings]{
		Method: http.MethodGet,
		Path:   "/settings",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Settings, error) {
			return h.svc.GetSettings(c.Request.Context())
		},
	})

	type themeIn struct {
		Theme string `json:"theme" binding:"required"`
	}
	Register(ez, Action[themeIn, domain.Settings]{
		Method: http.MethodPut,
		Path:   "/settings/theme",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *themeIn) (domain.Settings, error) {
			return h.svc.UpdateTheme(c.Request.Context(), domain.Theme(in.Theme))
		},
	})

	Register(ez, Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/schema",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			return gin.H{"schemaVersion": h.svc.SchemaVersion()}, nil
		},
	})
}

// MountAdmin registers the role-guarded operations; the group carries the
// admin JWT middleware.
func (h *Handler) MountAdmin(admin *gin.RouterGroup) {
	ez := NewEZ(admin)

	Register(ez, Action[struct{}, domain.PublicUser]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.PublicUser, error) {
			return h.svc.BanUser(c.Request.Context(), c.Param("id"))
		},
	})

	Register(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/spots/reset",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := h.svc.ResetMapData(c.Request.Context()); err != nil {
				return nil, err
			}
			return gin.H{"reset": true}, nil
		},
	})

	type simulateIn struct {
		Days int `json:"days"`
	}
	Register(ez, Action[simulateIn, domain.Settings]{
		Method: http.MethodPost,
		Path:   "/settings/simulate-now",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *simulateIn) (domain.Settings, error) {
			return h.svc.SimulateNow(c.Request.Context(), in.Days)
		},
	})

	type rateIn struct {
		Rate float64 `json:"rate"`
	}
	Register(ez, Action[rateIn, domain.Settings]{
		Method: http.MethodPut,
		Path:   "/settings/approval-rate",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *rateIn) (domain.Settings, error) {
			return h.svc.SetAIApprovalRate(c.Request.Context(), in.Rate)
		},
	})

	Register(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/reset",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := h.svc.ResetAllData(c.Request.Context()); err != nil {
				return nil, err
			}
			return gin.H{"reset": true}, nil
		},
	})
}
