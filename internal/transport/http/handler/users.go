package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanspot/internal/domain"
	"cleanspot/internal/service"
)

// MountUsers registers account lifecycle and auth routes on the public
// group.
func (h *Handler) MountUsers(api *gin.RouterGroup) {
	ez := NewEZ(api)

	type signupIn struct {
		Name     string `json:"name"     binding:"required,max=64"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	Register(ez, Action[signupIn, domain.PublicUser]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *signupIn) (domain.PublicUser, error) {
			return h.svc.CreateUser(c.Request.Context(), service.CreateUserParams{
				Name:     in.Name,
				Email:    in.Email,
				Password: in.Password,
			})
		},
	})

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string            `json:"token"`
		User  domain.PublicUser `json:"user"`
	}
	Register(ez, Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			tok, err := h.jwter.Issue(u.ID, string(u.Role))
			if err != nil {
				return loginOut{}, Internal("issue token failed", err)
			}
			return loginOut{Token: tok, User: u}, nil
		},
	})

	Register(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := h.svc.Logout(c.Request.Context()); err != nil {
				return nil, err
			}
			return gin.H{"loggedOut": true}, nil
		},
	})

	Register(ez, Action[struct{}, domain.PublicUser]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.PublicUser, error) {
			return h.svc.GetUser(c.Request.Context(), c.Param("id"))
		},
	})

	type updateIn struct {
		Name  *string `json:"name"  binding:"omitempty,max=64"`
		Email *string `json:"email" binding:"omitempty,email"`
	}
	Register(ez, Action[updateIn, domain.PublicUser]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *updateIn) (domain.PublicUser, error) {
			return h.svc.UpdateUser(c.Request.Context(), c.Param("id"), service.UpdateUserParams{
				Name:  in.Name,
				Email: in.Email,
			})
		},
	})

	Register(ez, Action[struct{}, domain.PublicUser]{
		Method: http.MethodPost,
		Path:   "/users/:id/premium",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.PublicUser, error) {
			return h.svc.UpgradeToPremium(c.Request.Context(), c.Param("id"))
		},
	})

	Register(ez, Action[struct{}, []domain.PublicUser]{
		Method: http.MethodGet,
		Path:   "/leaderboard",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.PublicUser, error) {
			return h.svc.Leaderboard(c.Request.Context())
		},
	})

	Register(ez, Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/session",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			sess, err := h.svc.SessionInfo(c.Request.Context())
			if err != nil {
				return nil, err
			}
			if sess == nil {
				return gin.H{"loggedIn": false}, nil
			}
			return gin.H{"loggedIn": true, "session": sess}, nil
		},
	})
}
