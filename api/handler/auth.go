package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yuzuhara/betbook/api/auth"
)

const (
	msgUsernameFormat = "ユーザーIDは半角アルファベットと数字のみ使用可能です。"
	msgUsernameTaken  = "そのユーザー名は既に登録されています。"
	msgBadCredentials = "ユーザー名またはパスワードが間違っています。"
)

func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register validates the username format first, then uniqueness. The first
// failing check re-renders the form with an inline message.
func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if !auth.ValidUsername(username) {
		c.HTML(http.StatusOK, "register.html", gin.H{"Error": msgUsernameFormat})
		return
	}

	_, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err == nil {
		c.HTML(http.StatusOK, "register.html", gin.H{"Error": msgUsernameTaken})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.db.CreateUser(c.Request.Context(), username, hashed); err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) LoginPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(auth.SessionUserKey) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login verifies the password hash and stores the user id in the session.
// Unknown user and wrong password produce the same plain-text error.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil || !auth.CheckPassword(user.Password, password) {
		c.String(http.StatusOK, msgBadCredentials)
		return
	}

	session := sessions.Default(c)
	session.Set(auth.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session. Idempotent.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
