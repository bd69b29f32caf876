package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

func (ctl *CommentController) AddComment(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req struct {
		TweetID string `json:"tweetId" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c)
		return
	}
	res, err := ctl.cc.AddComment(c.Request.Context(), req.TweetID, req.Content, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *CommentController) GetComment(c *gin.Context) {
	res, err := ctl.cc.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) UpdateComment(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c)
		return
	}
	res, err := ctl.cc.UpdateComment(c.Request.Context(), c.Param("id"), req.Content, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) DeleteComment(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	if err := ctl.cc.DeleteComment(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *CommentController) ListCommentsByTweet(c *gin.Context) {
	comments, err := ctl.cc.ListCommentsByTweet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
