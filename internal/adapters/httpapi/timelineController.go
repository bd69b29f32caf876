package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TimelineController struct{ tc TimelineUseCase }

func NewTimelineController(tc TimelineUseCase) *TimelineController {
	return &TimelineController{tc: tc}
}

func (ctrl *TimelineController) GetTimelineByUserID(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	// گرفتن start و limit از Query params و مقداردهی پیش‌فرض
	start, err := strconv.ParseInt(c.DefaultQuery("start", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	tweets, err := ctrl.tc.GetTimelineByUserID(c.Request.Context(), actor.ID, start, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": tweets})
}
