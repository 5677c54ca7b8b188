package response

import (
	"github.com/gin-gonic/gin"
)

// Response 统一错误响应结构
// 成功响应直接返回实体 JSON（与前端约定一致），失败响应使用该结构
type Response struct {
	Code    int         `json:"code"`    // 业务码
	Message string      `json:"message"` // 提示信息
	Data    interface{} `json:"data"`    // 数据
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, errCode int, msg string) {
	c.JSON(httpCode, Response{
		Code:    errCode,
		Message: msg,
		Data:    nil,
	})
}
