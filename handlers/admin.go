package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"meetbook/config"
	"meetbook/utils"
)

// AdminLogin exchanges the configured admin credentials for a JWT.
func AdminLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	cfg := config.AppConfig
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		utils.JSONError(c, http.StatusForbidden, "admin access is not configured", "")
		return
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateAdminToken(req.Username, 24*time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int64((24 * time.Hour).Seconds())})
}

// AdminListSessions pages through logged chat sessions, newest first.
func AdminListSessions(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	sessions, err := ChatLogs.ListSessions(c.Request.Context(), limit, offset)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list sessions", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "limit": limit, "offset": offset})
}

// AdminSessionMessages returns the full transcript of one session.
func AdminSessionMessages(c *gin.Context) {
	messages, err := ChatLogs.GetMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load messages", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": c.Param("id"), "messages": messages})
}

// AdminReport aggregates booking conversion stats.
func AdminReport(c *gin.Context) {
	report, err := ChatLogs.GetReport(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build report", err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}
