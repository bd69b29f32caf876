package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TweetController struct{ tc TweetUseCase }

func NewTweetController(tc TweetUseCase) *TweetController { return &TweetController{tc: tc} }

type tweetRequest struct {
	Content string `json:"content"`
}

func (ctl *TweetController) CreateTweet(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c)
		return
	}
	res, err := ctl.tc.CreateTweet(c.Request.Context(), req.Content, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *TweetController) GetTweet(c *gin.Context) {
	res, err := ctl.tc.GetTweet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *TweetController) ListTweetsByUser(c *gin.Context) {
	tweets, err := ctl.tc.ListTweetsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tweets": tweets})
}

func (ctl *TweetController) UpdateTweet(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c)
		return
	}
	res, err := ctl.tc.UpdateTweet(c.Request.Context(), c.Param("id"), req.Content, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *TweetController) DeleteTweet(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	if err := ctl.tc.DeleteTweet(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *TweetController) GetTweetStats(c *gin.Context) {
	stats, err := ctl.tc.GetTweetStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
