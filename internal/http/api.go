package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-identity/internal/domain"
	"storefront-identity/internal/service"
	"storefront-identity/internal/token"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	customers service.CustomerService
	activity  service.ActivityService
	admin     *service.AdminAuthenticator
	tokens    *token.Service
	logger    *logrus.Logger
}

func NewHandler(
	users service.UserService,
	customers service.CustomerService,
	activity service.ActivityService,
	admin *service.AdminAuthenticator,
	tokens *token.Service,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:     users,
		customers: customers,
		activity:  activity,
		admin:     admin,
		tokens:    tokens,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	user := api.Group("/user")
	{
		user.POST("/register", h.register)
		user.POST("/login", h.login)
		user.POST("/logout", h.logout)
		user.POST("/admin", h.adminLogin)

		user.GET("/profile", h.requireUser(), h.getProfile)
		user.PUT("/profile", h.requireUser(), h.updateProfile)
		user.PUT("/change-password", h.requireUser(), h.changePassword)

		user.GET("/customer-activity", h.requireAdmin(), h.customerActivity)
		user.GET("/customers", h.requireAdmin(), h.listCustomers)
		user.PUT("/customers/update", h.requireAdmin(), h.updateCustomer)
		user.POST("/customers/reset-password", h.requireAdmin(), h.resetCustomerPassword)
		user.POST("/customers/impersonate", h.requireAdmin(), h.impersonateCustomer)
		user.DELETE("/customers/delete", h.requireAdmin(), h.deleteCustomer)
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tok, err := h.tokens.Mint(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": tok})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tok, err := h.tokens.Mint(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": tok})
}

type logoutRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (h *Handler) logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.users.RecordLogout(c.Request.Context(), req.UserID, req.Email); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout event recorded"})
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !h.admin.Verify(req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	tok, err := h.tokens.MintAdmin()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": tok})
}

type activityResponse struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	EventType string `json:"eventType"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) customerActivity(c *gin.Context) {
	entries, err := h.activity.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]activityResponse, len(entries))
	for i, entry := range entries {
		resp[i] = activityResponse{
			UserID:    entry.UserID,
			Name:      entry.Name,
			Email:     entry.Email,
			EventType: string(entry.EventType),
			Timestamp: entry.Timestamp.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

type customerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]customerResponse, len(customers))
	for i := range customers {
		resp[i] = customerToResponse(&customers[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

type updateCustomerRequest struct {
	UserID    string  `json:"userId" binding:"required"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	IsActive  *bool   `json:"isActive"`
}

func (h *Handler) updateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := h.customers.Update(c.Request.Context(), req.UserID, service.CustomerUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer updated successfully"})
}

type customerIDRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (h *Handler) resetCustomerPassword(c *gin.Context) {
	var req customerIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	tempPassword, err := h.customers.ResetPassword(c.Request.Context(), req.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tempPassword": tempPassword, "message": "Temporary password generated"})
}

func (h *Handler) impersonateCustomer(c *gin.Context) {
	var req customerIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	tok, _, err := h.customers.Impersonate(c.Request.Context(), req.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": tok, "message": "Impersonation token generated"})
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	var req customerIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.customers.Delete(c.Request.Context(), req.UserID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer deleted successfully"})
}

func (h *Handler) getProfile(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized Login Again"})
		return
	}

	user := principal.User
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"firstName":      user.FirstName,
		"lastName":       user.LastName,
		"email":          user.Email,
		"username":       user.Username,
		"profilePicture": user.AvatarPath,
	})
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Username  *string `json:"username"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized Login Again"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	_, err := h.users.UpdateProfile(c.Request.Context(), principal.User.ID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *Handler) changePassword(c *gin.Context) {
	principal := currentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized Login Again"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// respondError maps domain errors to the JSON envelope. Anything outside the
// taxonomy is logged and reported as a generic internal failure.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
	default:
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

func customerToResponse(user *domain.User) customerResponse {
	return customerResponse{
		ID:        user.ID,
		Name:      user.DisplayName(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Username:  user.Username,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
