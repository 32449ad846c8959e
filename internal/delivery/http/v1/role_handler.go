package v1

import (
	"net/http"
	"strings"

	"hireable-backend/internal/delivery/http/response"
	"hireable-backend/internal/domain"
	"hireable-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleUC      domain.RoleUsecase
	frontendURL string
}

// NewRoleHandler registers the role endpoints. The sign-in redirect runs on
// the optional-auth group so a missing session lands on the home page
// instead of a 401.
func NewRoleHandler(optional, protected *gin.RouterGroup, roleUC domain.RoleUsecase, frontendURL string) {
	handler := &RoleHandler{roleUC: roleUC, frontendURL: strings.TrimRight(frontendURL, "/")}

	optional.GET("/auth/role-handler", handler.SignIn)

	protected.GET("/user-role", handler.GetRole)
	protected.POST("/user-role", handler.AssignRole)
}

type RoleResponse struct {
	Role *domain.Role `json:"role"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// GetRole godoc
// @Summary      Get user role
// @Description  The caller's role, or null before one is assigned
// @Tags         roles
// @Produce      json
// @Success      200  {object}  response.Response{data=RoleResponse}
// @Failure      401  {object}  response.Response
// @Router       /user-role [get]
// @Security     BearerAuth
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roleUC.CurrentRole(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	var out RoleResponse
	if role != domain.RoleNone {
		out.Role = &role
	}
	response.Success(c, http.StatusOK, "User role", out)
}

// AssignRole godoc
// @Summary      Assign user role
// @Description  Set the caller's role once. A second attempt is a conflict.
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        request  body      AssignRoleRequest  true  "candidate or recruiter"
// @Success      201  {object}  response.Response{data=RoleResponse}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /user-role [post]
// @Security     BearerAuth
func (h *RoleHandler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid role"))
		return
	}

	role := domain.Role(req.Role)
	if err := h.roleUC.AssignCurrentRole(c.Request.Context(), role); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Role assigned", RoleResponse{Role: &role})
}

// SignIn godoc
// @Summary      Post sign-in role check
// @Description  Assigns the intended role on first sign-in and redirects; mismatched roles go to /unauthorized or /access-denied
// @Tags         roles
// @Param        role      query  string  false  "candidate or recruiter"
// @Param        redirect  query  string  false  "Path to continue to"
// @Success      302
// @Router       /auth/role-handler [get]
func (h *RoleHandler) SignIn(c *gin.Context) {
	decision, err := h.roleUC.ResolveSignIn(c.Request.Context(), domain.Role(c.Query("role")), c.DefaultQuery("redirect", "/"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, h.frontendURL+decision.Redirect)
}
