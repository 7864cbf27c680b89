package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cleanspot/internal/domain"
	resp "cleanspot/internal/transport/http/response"
)

// EZ is the one-line action registrar: bind input, run, map errors into
// the envelope.
type EZ struct{ g *gin.RouterGroup }

func NewEZ(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // read c.Param / c.Query yourself
)

// AErr carries an explicit envelope code chosen by the handler.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// mapDomainErr translates the domain taxonomy into envelope codes so every
// endpoint reports the same way.
func mapDomainErr(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return resp.CodeConflict
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrSpotNotFound):
		return resp.CodeNotFound
	case errors.Is(err, domain.ErrBanned):
		return resp.CodeForbidden
	case errors.Is(err, domain.ErrInvalidCredential):
		return resp.CodeUnauthorized
	case errors.Is(err, domain.ErrValidation):
		return resp.CodeValidation
	default:
		return resp.CodeServerError
	}
}

type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *AErr
			if errors.As(err, &ae) {
				c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Error()))
				return
			}
			c.JSON(http.StatusOK, resp.Error(mapDomainErr(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
