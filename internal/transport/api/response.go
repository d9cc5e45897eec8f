package api

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgServerError      = "服务器错误"
	msgCardNotFound     = "会员卡不存在"
	msgBadCredentials   = "账号或密码错误"
	msgTokenExpired     = "Token 已过期"
	msgTokenInvalid     = "Token 无效"
	msgTokenEmpty       = "Token 不能为空"
	msgMissingFields    = "缺少必填字段"
	msgInvalidData      = "无效的数据格式"
	msgDuplicateEntry   = "数据已存在"
	msgInvalidID        = "无效的 ID"
	msgInvalidDate      = "无效的日期格式"
	msgFileRequired     = "请上传文件"
	msgFileType         = "只支持 Excel 文件格式"
	msgFileEmpty        = "Excel文件为空"
	msgFileUnreadable   = "无法解析 Excel 文件"
	msgFileLegacy       = "暂不支持 Excel 97-2003 (.xls) 文件，请另存为 .xlsx 后重新上传"
	msgAccountDuplicate = "账号或用户名已存在"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}

// abortWithDomainError maps service errors to status codes. Unexpected errors are attached to the context
// for the access log and answered with a generic message.
func abortWithDomainError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		abortWithMessage(c, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, domain.ErrDuplicateKey):
		abortWithMessage(c, http.StatusBadRequest, msgDuplicateEntry)
	case errors.Is(err, domain.ErrRecordNotFound):
		abortWithMessage(c, http.StatusNotFound, msgCardNotFound)
	case errors.Is(err, domain.ErrPasswordMissMatch):
		abortWithMessage(c, http.StatusUnauthorized, msgBadCredentials)
	case errors.Is(err, domain.ErrTokenExpired):
		abortWithMessage(c, http.StatusUnauthorized, msgTokenExpired)
	case errors.Is(err, domain.ErrTokenInvalid):
		abortWithMessage(c, http.StatusUnauthorized, msgTokenInvalid)
	default:
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		abortWithMessage(c, http.StatusInternalServerError, msgServerError)
	}
}

// abortWithBindError answers 400. Missing required fields get their own message, anything else that fails
// binding is reported as malformed input. The cause is rendered by middlewares.Errors.
func abortWithBindError(c *gin.Context, err error) {
	msg := msgInvalidData
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		for _, fe := range valErrs {
			if fe.Tag() == "required" {
				msg = msgMissingFields
				break
			}
		}
	}
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	_ = c.AbortWithError(http.StatusBadRequest, errors.New(msg)).SetType(gin.ErrorTypePublic)
}
