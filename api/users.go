package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/service/users"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(public, private *gin.RouterGroup) {
	public.POST("/users", h.create)
	private.GET("/users", h.list)
	public.GET("/users/user/:email", h.exists)
	public.GET("/users/info/:email", h.info)
	private.PATCH("/users/update-role", h.updateRole)
	private.PATCH("/users/update-status", h.updateStatus)
}

func (h *UserHandler) create(c *gin.Context) {
	var req users.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) exists(c *gin.Context) {
	exists, err := h.service.Exists(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, exists)
}

func (h *UserHandler) info(c *gin.Context) {
	info, err := h.service.Info(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The frontend expects a bare false for unknown accounts.
			c.JSON(http.StatusOK, false)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *UserHandler) updateRole(c *gin.Context) {
	email := c.Query("email")
	role := c.Query("role")
	if email == "" || role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and role are required"})
		return
	}

	if err := h.service.UpdateRole(c.Request.Context(), email, domain.UserRole(role)); err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
}

func (h *UserHandler) updateStatus(c *gin.Context) {
	email := c.Query("email")
	status := c.Query("status")
	if email == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and status are required"})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), email, domain.UserStatus(status)); err != nil {
		respondUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
}

func respondUpdateError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
