package handlers

import (
	"errors"
	"net/http"

	"stayhub/middleware"
	"stayhub/services/user"

	"github.com/gin-gonic/gin"
)

// Register creates an account and returns the signed-in session.
func Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := UserSvc.Register(req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		var dup user.DuplicateEmailError
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SignIn authenticates credentials and returns a fresh session token.
func SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := UserSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		var invalid user.InvalidCredentialsError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignOut revokes the current session everywhere.
func SignOut(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if err := UserSvc.RevokeToken(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// GetProfile returns the authenticated user's profile.
func GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	u, err := UserSvc.GetProfile(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile applies a partial update to the authenticated user's profile.
func UpdateProfile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, err := UserSvc.UpdateProfile(userID, updates)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// BecomeHost grants the authenticated user the host role.
func BecomeHost(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	u, err := UserSvc.PromoteToHost(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func respondUserError(c *gin.Context, err error) {
	var notFound user.UserNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
