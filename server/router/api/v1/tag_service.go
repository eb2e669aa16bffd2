package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ListTags handles GET /api/tags.
func (s *APIV1Service) ListTags(c echo.Context) error {
	tags, err := s.Notebook.Tags(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tags").SetInternal(err)
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(http.StatusOK, &ListTagsResponse{Tags: tags})
}

// CreateTag handles POST /api/tags. Blank and duplicate tags are ignored with 200.
func (s *APIV1Service) CreateTag(c echo.Context) error {
	var req TagRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	added, err := s.Notebook.AddTag(c.Request().Context(), req.Tag)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add tag").SetInternal(err)
	}
	resp := &CreateTagResponse{Tag: strings.TrimSpace(req.Tag), Added: added}
	if added {
		return c.JSON(http.StatusCreated, resp)
	}
	return c.JSON(http.StatusOK, resp)
}
