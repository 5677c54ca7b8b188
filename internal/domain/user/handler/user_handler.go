package handler

import (
	"errors"
	"net/http"
	"strconv"

	"garden_feed/internal/domain/user/service"
	"garden_feed/pkg/logger"
	"garden_feed/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
}

// NewUserHandler 创建处理器
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserInput 注册输入
type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Location string `json:"location"`
	Zone     string `json:"zone"`
}

// CreateUser 创建用户
// 校验失败只返回笼统提示，详细原因记录在日志里，不透给前端
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Log.Warn("invalid user payload", zap.Error(err))
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid user data")
		return
	}

	user, err := h.service.Register(input.Username, input.Email, input.Password, input.Location, input.Zone)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Error(c, http.StatusBadRequest, response.ErrUserExists, "User already exists")
			return
		}
		logger.Log.Error("register failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Server error")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser 获取单个用户
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// 无法解析的 ID 等价于不存在的用户
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
		return
	}

	user, err := h.service.GetUser(uint(id))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}
