package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stockmanager/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"notblank"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"notblank"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handlers) issue(c *gin.Context, status int, user *models.User) {
	token, err := h.Tokens.Issue(user)
	if err != nil {
		h.storageError(c, "failed to issue token", err)
		return
	}
	c.JSON(status, tokenResponse{Token: token, User: user})
}

// Register creates an account and logs it in.
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess := SessionFrom(c)
	user, err := h.Auth.Register(c.Request.Context(), sess,
		strings.TrimSpace(req.Username), req.Password,
		strings.TrimSpace(req.FullName), strings.TrimSpace(req.Email))
	if err != nil {
		h.storageError(c, "failed to register user", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	h.issue(c, http.StatusCreated, user)
}

// Login checks credentials and returns a bearer token for the session.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess := SessionFrom(c)
	user, err := h.Auth.Login(c.Request.Context(), sess, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		h.storageError(c, "failed to log in", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	h.issue(c, http.StatusOK, user)
}

// Logout ends the session; the token used for it stops working.
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), SessionFrom(c)); err != nil {
		h.storageError(c, "failed to log out", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the logged-in user.
func (h *Handlers) Me(c *gin.Context) {
	sess := SessionFrom(c)
	if !sess.LoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	c.JSON(http.StatusOK, sess.User())
}

// UpdateProfile changes the logged-in user's full name and email.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess := SessionFrom(c)
	ok, err := h.Auth.UpdateProfile(c.Request.Context(), sess, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Email))
	if err != nil {
		h.storageError(c, "failed to update profile", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, sess.User())
}

// ChangePassword replaces the password after checking the current one. Older
// tokens are revoked, so the response carries a fresh one.
func (h *Handlers) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess := SessionFrom(c)
	ok, err := h.Auth.ChangePassword(c.Request.Context(), sess, req.OldPassword, req.NewPassword)
	if err != nil {
		h.storageError(c, "failed to change password", err)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	h.issue(c, http.StatusOK, sess.User())
}
