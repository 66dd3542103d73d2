package handler

import (
	"github.com/gin-gonic/gin"

	"notemark/apperr"
	"notemark/dto"
	"notemark/middleware"
	"notemark/usecase"
	"notemark/utils"
)

type AuthHandler struct {
	auth *usecase.AuthService
}

func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Created(c, dto.ToAuthResponse(res.User, res.Token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, dto.ToAuthResponse(res.User, res.Token))
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Fail(c, apperr.Unauthorized("Not authorized - no token provided"))
		return
	}
	utils.Success(c, identity)
}
