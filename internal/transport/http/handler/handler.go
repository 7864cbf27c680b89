package handler

import (
	"go.uber.org/zap"

	"cleanspot/internal/core/auth"
	"cleanspot/internal/service"
)

type Handler struct {
	svc      *service.Service
	jwter    *auth.JWTer
	approver Approver
	log      *zap.Logger
}

func New(svc *service.Service, jwter *auth.JWTer, approver Approver, log *zap.Logger) *Handler {
	if approver == nil {
		approver = RandomApprover{}
	}
	return &Handler{svc: svc, jwter: jwter, approver: approver, log: log}
}
