package v1

import (
	"net/http"

	"hireable-backend/internal/delivery/http/response"
	"hireable-backend/pkg/content"

	"github.com/gin-gonic/gin"
)

type LocaleResponse struct {
	Locale    content.Locale   `json:"locale"`
	RTL       bool             `json:"rtl"`
	Supported []content.Locale `json:"supported"`
}

func NewLocaleHandler(r *gin.RouterGroup) {
	r.GET("/locale", GetLocale)
}

// GetLocale godoc
// @Summary      Negotiated locale
// @Description  The locale chosen from the NEXT_LOCALE cookie and Accept-Language, with its text direction
// @Tags         locale
// @Produce      json
// @Success      200  {object}  response.Response{data=LocaleResponse}
// @Router       /locale [get]
func GetLocale(c *gin.Context) {
	l := content.LocaleFrom(c.Request.Context())
	response.Success(c, http.StatusOK, "Locale", LocaleResponse{
		Locale:    l,
		RTL:       l.RTL(),
		Supported: []content.Locale{content.English, content.Arabic},
	})
}
