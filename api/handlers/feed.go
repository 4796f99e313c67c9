package handlers

import (
	"net/http"
	"shopfeed/api/middleware"
	"shopfeed/models"
	"shopfeed/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	feedService   = services.NewFeedService()
	actionService = services.NewActionService()
)

// GetFeed отдает одну страницу ленты.
// Параметры пагинации с дефолтами: page=1, limit=10.
func GetFeed(c *gin.Context) {
	page := 1
	limit := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	feedPage, err := feedService.GetPage(c.Request.Context(), page, limit)
	if err != nil {
		middleware.RecordFeedPage("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed data"})
		return
	}

	middleware.RecordFeedPage("ok")
	c.JSON(http.StatusOK, feedPage)
}

// PostFeedAction принимает действие пользователя (лайк, шер, добавление в
// корзину и т.д.) и отвечает подтверждением
func PostFeedAction(c *gin.Context) {
	var action models.PostAction
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !action.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		return
	}

	result, err := actionService.Record(c.Request.Context(), action)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process action"})
		return
	}

	middleware.RecordFeedAction(action.Action, "http")
	c.JSON(http.StatusOK, result)
}
