package handler

import (
	"errors"
	"net/http"
	"strconv"

	"garden_feed/internal/domain/feed/service"
	"garden_feed/internal/pkg/database"
	"garden_feed/internal/pkg/uploader"
	"garden_feed/pkg/logger"
	"garden_feed/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedHandler 动态处理器
type FeedHandler struct {
	service  service.FeedService
	uploader uploader.Uploader
}

// NewFeedHandler 创建处理器
func NewFeedHandler(s service.FeedService, up uploader.Uploader) *FeedHandler {
	return &FeedHandler{service: s, uploader: up}
}

// CreatePostInput JSON 方式发布动态的输入
// 图片只能通过 multipart 上传，JSON 请求不接受 imageUrl
type CreatePostInput struct {
	UserID   uint   `json:"userId" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// CommentInput 评论输入
type CommentInput struct {
	UserID  uint   `json:"userId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// LikeInput 点赞输入
type LikeInput struct {
	UserID uint `json:"userId" binding:"required"`
}

// GetFeed 获取动态流，支持 ?category= 精确过滤，最新在前
func (h *FeedHandler) GetFeed(c *gin.Context) {
	posts, err := h.service.GetFeed(c.Query("category"))
	if err != nil {
		logger.Log.Error("get feed failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Server error")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost 获取单条动态
func (h *FeedHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
		return
	}

	post, err := h.service.GetPost(uint(id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
			return
		}
		logger.Log.Error("get post failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Server error")
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost 发布动态
// 同时支持 multipart/form-data（可附带一张图片）和纯 JSON
func (h *FeedHandler) CreatePost(c *gin.Context) {
	if c.ContentType() == "multipart/form-data" {
		h.createPostMultipart(c)
		return
	}

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Log.Warn("invalid post payload", zap.Error(err))
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post data")
		return
	}

	post, err := h.service.CreatePost(input.UserID, input.Content, input.Category, nil)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *FeedHandler) createPostMultipart(c *gin.Context) {
	userID, err := strconv.ParseUint(c.PostForm("userId"), 10, 32)
	content := c.PostForm("content")
	category := c.PostForm("category")
	if err != nil || content == "" || category == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post data")
		return
	}

	var imageURL *string
	file, ferr := c.FormFile("image")
	switch {
	case ferr == nil:
		url, uerr := h.uploader.UploadFile(file)
		if uerr != nil {
			h.uploadError(c, uerr)
			return
		}
		imageURL = &url
	case errors.Is(ferr, http.ErrMissingFile):
		// 无图片，imageUrl 保持 null
	default:
		logger.Log.Warn("invalid multipart form", zap.Error(ferr))
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post data")
		return
	}

	post, err := h.service.CreatePost(uint(userID), content, category, imageURL)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// writeError 服务层引用完整性错误映射为客户端错误，其余一律 500
func (h *FeedHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusBadRequest, response.ErrUserNotFound, "User not found")
	default:
		logger.Log.Error("feed operation failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Server error")
	}
}

// uploadError 上传约束错误需要告知具体原因（大小或类型），其余一律笼统处理
func (h *FeedHandler) uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, uploader.ErrFileTooLarge):
		response.Error(c, http.StatusBadRequest, response.ErrFileTooLarge, "File too large (max 5MB)")
	case errors.Is(err, uploader.ErrNotImage):
		response.Error(c, http.StatusBadRequest, response.ErrFileType, "Only image files are allowed")
	default:
		logger.Log.Error("upload failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Server error")
	}
}

// GetComments 获取某条动态的评论，最早在前
// 读取路由上的非法 id 与 GetPost 一致，按未找到处理
func (h *FeedHandler) GetComments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
		return
	}

	comments, err := h.service.GetPostComments(uint(id))
	if err != nil {
		logger.Log.Error("get comments failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Server error")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment 发表评论，所属动态的评论计数由存储层同步更新
func (h *FeedHandler) AddComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid comment data")
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Log.Warn("invalid comment payload", zap.Error(err))
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid comment data")
		return
	}

	comment, err := h.service.AddComment(uint(id), input.UserID, input.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ToggleLike 点赞/取消点赞，返回切换后的状态和最新计数
func (h *FeedHandler) ToggleLike(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid like data")
		return
	}

	var input LikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Log.Warn("invalid like payload", zap.Error(err))
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid like data")
		return
	}

	liked, likeCount, err := h.service.ToggleLike(uint(id), input.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likeCount": likeCount})
}

// GetLikeStatus 查询某用户对某条动态的点赞状态
func (h *FeedHandler) GetLikeStatus(c *gin.Context) {
	postID, perr := strconv.ParseUint(c.Param("id"), 10, 32)
	userID, uerr := strconv.ParseUint(c.Param("userId"), 10, 32)
	if perr != nil || uerr != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid like data")
		return
	}

	liked, err := h.service.HasLiked(uint(postID), uint(userID))
	if err != nil {
		logger.Log.Error("get like status failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
