package http

import (
	"github.com/gofiber/fiber/v2"
)

// ResponseErr 错误响应结构
type ResponseErr struct {
	ErrCode int    `json:"code"`
	ErrMsg  any    `json:"errMsg"`
	Path    string `json:"path,omitempty"`
}

// WithRepErrStatus 设置 HTTP 状态码并返回错误
func WithRepErrStatus(c *fiber.Ctx, status int, code *Response, path string) error {
	return c.Status(status).JSON(ResponseErr{
		ErrCode: code.Code,
		ErrMsg:  code.Msg,
		Path:    path,
	})
}
