package errors

import (
	"github.com/gin-gonic/gin"

	"github.com/earnbaseio/earnbase-common/responses"
)

// Respond writes err as a JSON error envelope on the gin context. Errors
// outside the taxonomy are rendered as internal errors without leaking the
// underlying message.
func Respond(c *gin.Context, err error) {
	e, ok := As(err)
	if !ok {
		e = Internal("")
	}

	c.AbortWithStatusJSON(e.Status, responses.ErrorResponse{
		Code:    e.Code,
		Error:   e.Message,
		Details: e.Details,
	})
}
