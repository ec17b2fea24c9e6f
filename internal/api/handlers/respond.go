package handlers

import (
	"errors"
	"net/http"

	"lazyfood/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// WriteError maps service errors onto the API error payload. CustomError
// carries its own status and code; validation failures become 400s;
// everything else is a 500 without leaking internals.
func WriteError(c *gin.Context, err error) {
	var custom *common.CustomError
	if errors.As(err, &custom) {
		c.JSON(custom.Status, common.ErrorResponse{
			Code:    custom.Code,
			Message: custom.Message,
		})
		return
	}

	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "internal server error",
	})
}
