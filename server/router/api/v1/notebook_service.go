package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetNotebook handles GET /api/notebook.
func (s *APIV1Service) GetNotebook(c echo.Context) error {
	return s.renderNotebook(c)
}

// SetSearchTerm handles PUT /api/notebook/search.
func (s *APIV1Service) SetSearchTerm(c echo.Context) error {
	var req SearchRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	s.Notebook.SetSearchTerm(req.Term)
	return s.renderNotebook(c)
}

// SelectTag handles POST /api/notebook/tag. Selecting the selected tag clears it.
func (s *APIV1Service) SelectTag(c echo.Context) error {
	var req TagRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &SelectTagResponse{SelectedTag: s.Notebook.SelectTag(req.Tag)})
}

// EditNote handles POST /api/notebook/editing.
func (s *APIV1Service) EditNote(c echo.Context) error {
	var req EditRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	note, err := s.Notebook.EditNote(c.Request().Context(), req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to edit note").SetInternal(err)
	}
	if note == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("note %d not found", req.ID))
	}
	return c.JSON(http.StatusOK, convertNoteFromStore(note))
}

// CancelEdit handles DELETE /api/notebook/editing.
func (s *APIV1Service) CancelEdit(c echo.Context) error {
	s.Notebook.CancelEdit()
	return c.NoContent(http.StatusNoContent)
}

// SaveEdit handles POST /api/notebook/editing/save.
func (s *APIV1Service) SaveEdit(c echo.Context) error {
	var req UpdateNoteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	note, err := s.Notebook.SaveEdit(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save note").SetInternal(err)
	}
	if note == nil {
		return echo.NewHTTPError(http.StatusConflict, "no note is being edited")
	}
	return c.JSON(http.StatusOK, convertNoteFromStore(note))
}

func (s *APIV1Service) renderNotebook(c echo.Context) error {
	view, err := s.Notebook.View(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render notebook").SetInternal(err)
	}
	return c.JSON(http.StatusOK, convertNotebookFromView(view))
}
