package handler

import (
	"github.com/gin-gonic/gin"

	"notemark/apperr"
	"notemark/dto"
	"notemark/model"
	"notemark/usecase"
	"notemark/utils"
)

type BookmarksHandler struct {
	bookmarks *usecase.BookmarksService
}

func NewBookmarksHandler(bookmarks *usecase.BookmarksService) *BookmarksHandler {
	return &BookmarksHandler{bookmarks: bookmarks}
}

func (h *BookmarksHandler) List(c *gin.Context) {
	var q model.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.Fail(c, apperr.BadRequest(utils.ValidationMessage(err)))
		return
	}

	bookmarks, err := h.bookmarks.ListBookmarks(c.Request.Context(), q)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.List(c, bookmarks)
}

// Create may block on the title lookup when no title is supplied.
func (h *BookmarksHandler) Create(c *gin.Context) {
	var req dto.CreateBookmarkRequest
	if !bindJSON(c, &req) {
		return
	}

	bookmark, err := h.bookmarks.CreateBookmark(c.Request.Context(), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Created(c, bookmark)
}

func (h *BookmarksHandler) Get(c *gin.Context) {
	bookmark, err := h.bookmarks.GetBookmark(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, bookmark)
}

func (h *BookmarksHandler) Update(c *gin.Context) {
	var req dto.UpdateBookmarkRequest
	if !bindJSON(c, &req) {
		return
	}

	bookmark, err := h.bookmarks.UpdateBookmark(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, bookmark)
}

func (h *BookmarksHandler) Delete(c *gin.Context) {
	if err := h.bookmarks.DeleteBookmark(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Message(c, "Bookmark deleted successfully")
}
