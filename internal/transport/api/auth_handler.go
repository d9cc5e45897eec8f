package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/service"
	"github.com/fsdevblog/cenjin-cards/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Account   string    `json:"account"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Account:   u.Account,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type UserLoginParams struct {
	Account  string `binding:"required,max=50"          json:"account"`
	Password string `binding:"required,max_bytes=72"    json:"password"`
}

// Login POST RouteGroup + LoginRoute. Authenticates by account and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx := c.Request.Context()

	user, token, err := h.userService.Login(ctx, service.LoginUserArgs{
		Account:  params.Account,
		Password: params.Password,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	respond(c, http.StatusOK, "登录成功", AuthResponse{User: newUserResponse(user), Token: token})
}

type UserRegisterParams struct {
	Username string `binding:"required,max=50"          json:"username"`
	Account  string `binding:"required,max=50"          json:"account"`
	Password string `binding:"required,min=6,max_bytes=72" json:"password"`
}

// Register POST RouteGroup + RegisterRoute. Creates a user and returns a token for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var params UserRegisterParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx := c.Request.Context()

	user, token, err := h.userService.Register(ctx, service.RegisterUserArgs{
		Username: params.Username,
		Account:  params.Account,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			abortWithMessage(c, http.StatusBadRequest, msgAccountDuplicate)
			return
		}
		abortWithDomainError(c, err)
		return
	}

	respond(c, http.StatusCreated, "注册成功", AuthResponse{User: newUserResponse(user), Token: token})
}

type TokenParams struct {
	Token string `json:"token"`
}

// Verify POST RouteGroup + VerifyRoute. Returns the claims of a valid token.
func (h *AuthHandler) Verify(c *gin.Context) {
	token, ok := h.bindToken(c)
	if !ok {
		return
	}

	claims, err := h.userService.ValidateToken(token)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, "Token 验证成功", claims)
}

type RefreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Refresh POST RouteGroup + RefreshRoute. Re-issues a correctly signed, possibly expired token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := h.bindToken(c)
	if !ok {
		return
	}

	fresh, err := h.userService.RefreshToken(token)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, RefreshResponse{Success: true, Message: "Token 刷新成功", Token: fresh})
}

// Me GET RouteGroup + MeRoute. Returns the claims of the caller.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middlewares.CurrentUser(c)
	if !ok {
		abortWithMessage(c, http.StatusUnauthorized, "未提供认证信息")
		return
	}
	respond(c, http.StatusOK, "", claims)
}

func (h *AuthHandler) bindToken(c *gin.Context) (string, bool) {
	var params TokenParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil && !errors.Is(bindErr, io.EOF) {
		abortWithBindError(c, bindErr)
		return "", false
	}
	if params.Token == "" {
		abortWithMessage(c, http.StatusBadRequest, msgTokenEmpty)
		return "", false
	}
	return params.Token, true
}
