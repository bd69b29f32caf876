package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LikeController struct{ lc LikeUseCase }

func NewLikeController(lc LikeUseCase) *LikeController { return &LikeController{lc: lc} }

func (ctl *LikeController) Like(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	res, err := ctl.lc.Like(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *LikeController) Unlike(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	if err := ctl.lc.Unlike(c.Request.Context(), c.Param("id"), actor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HasLiked reports whether the caller likes tweet :id.
func (ctl *LikeController) HasLiked(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	liked, err := ctl.lc.HasLiked(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (ctl *LikeController) ListLikesByTweet(c *gin.Context) {
	likes, err := ctl.lc.ListLikesByTweet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

type RetweetController struct{ rc RetweetUseCase }

func NewRetweetController(rc RetweetUseCase) *RetweetController {
	return &RetweetController{rc: rc}
}

func (ctl *RetweetController) Retweet(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	res, err := ctl.rc.Retweet(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// RemoveRetweet deletes by retweet id, only the retweet's creator may do it.
func (ctl *RetweetController) RemoveRetweet(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	if err := ctl.rc.RemoveRetweet(c.Request.Context(), c.Param("id"), actor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *RetweetController) HasRetweeted(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	retweeted, err := ctl.rc.HasRetweeted(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"retweeted": retweeted})
}

func (ctl *RetweetController) ListRetweetsByTweet(c *gin.Context) {
	retweets, err := ctl.rc.ListRetweetsByTweet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"retweets": retweets})
}
