package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FollowerController struct{ fc FollowerUseCase }

func NewFollowerController(fc FollowerUseCase) *FollowerController {
	return &FollowerController{fc: fc}
}

// FollowUser کاربر جاری کاربر :id را دنبال می‌کند
func (ctl *FollowerController) FollowUser(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	if err := ctl.fc.FollowUser(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "successfully followed user"})
}

func (ctl *FollowerController) UnfollowUser(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	if err := ctl.fc.UnfollowUser(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// IsFollowing آیا کاربر جاری کاربر :id را دنبال می‌کند
func (ctl *FollowerController) IsFollowing(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	following, err := ctl.fc.IsFollowing(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (ctl *FollowerController) GetFollowersByUserID(c *gin.Context) {
	followers, err := ctl.fc.GetFollowersByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

func (ctl *FollowerController) GetFollowingByUserID(c *gin.Context) {
	following, err := ctl.fc.GetFollowingByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (ctl *FollowerController) GetFollowCounts(c *gin.Context) {
	counts, err := ctl.fc.GetFollowCounts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
