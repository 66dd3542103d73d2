package handler

import (
	"github.com/gin-gonic/gin"

	"notemark/apperr"
	"notemark/dto"
	"notemark/model"
	"notemark/usecase"
	"notemark/utils"
)

type NotesHandler struct {
	notes *usecase.NotesService
}

func NewNotesHandler(notes *usecase.NotesService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

func (h *NotesHandler) List(c *gin.Context) {
	var q model.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.Fail(c, apperr.BadRequest(utils.ValidationMessage(err)))
		return
	}

	notes, err := h.notes.ListNotes(c.Request.Context(), q)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.List(c, notes)
}

func (h *NotesHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.notes.CreateNote(c.Request.Context(), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Created(c, note)
}

func (h *NotesHandler) Get(c *gin.Context) {
	note, err := h.notes.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, note)
}

func (h *NotesHandler) Update(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.notes.UpdateNote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, note)
}

func (h *NotesHandler) Delete(c *gin.Context) {
	if err := h.notes.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Message(c, "Note deleted successfully")
}
