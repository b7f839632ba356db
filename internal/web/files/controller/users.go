package controller

import (
	"net/http"
	"time"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/gin-gonic/gin"

	"fileserver/internal/web/files/dto"
)

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account.
func (c *Controller) Register(ctx *gin.Context) {
	var creds credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		c.abortWithError(ctx, errors.Wrap(err, "bind credentials"))
		return
	}

	user, err := c.svc.Register(ctx.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Auth verifies the credential and issues a bearer token.
func (c *Controller) Auth(ctx *gin.Context) {
	var creds credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		c.abortWithError(ctx, errors.Wrap(err, "bind credentials"))
		return
	}

	user, err := c.svc.Authenticate(ctx.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	expires := time.Duration(gconfig.Shared.GetInt("settings.token_expires_min")) * time.Minute
	if expires <= 0 {
		expires = 30 * time.Minute
	}

	token, err := c.jwt.Sign(user.Username, expires)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Token{AccessToken: token, TokenType: "bearer"})
}

// Status summarizes the user's disk usage.
func (c *Controller) Status(ctx *gin.Context) {
	user, ok := c.currentUser(ctx)
	if !ok {
		return
	}

	status, err := c.svc.Status(ctx.Request.Context(), user)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}
