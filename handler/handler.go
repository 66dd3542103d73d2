package handler

import (
	"github.com/gin-gonic/gin"

	"notemark/apperr"
	"notemark/utils"
)

// bindJSON decodes the body into req and renders a 400 when it does not
// validate. It reports whether the handler should go on.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.Fail(c, apperr.BadRequest(utils.ValidationMessage(err)))
		return false
	}
	return true
}
