package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
)

// JSON sends a bare payload. Several legacy endpoints answer with plain
// arrays or objects instead of the success envelope.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Success sends the `{success:true, ...}` envelope most endpoints use.
// Extra fields are merged next to the success flag.
func Success(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Data is shorthand for a 200 `{success:true, data:...}` body.
func Data(c *gin.Context, data interface{}) {
	Success(c, http.StatusOK, gin.H{"data": data})
}

// Error converts err to the `{"error": string}` contract with its HTTP status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}

// File streams binary content as a download attachment.
func File(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
