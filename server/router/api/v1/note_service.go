package v1

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/hrygo/notekeeper/notebook"
	"github.com/hrygo/notekeeper/store"
)

// ListNotes handles GET /api/notes. tag and q apply the notebook filter;
// filter is an optional CEL predicate over id, title, content and tags.
func (s *APIV1Service) ListNotes(c echo.Context) error {
	ctx := c.Request().Context()

	var expr *notebook.Expression
	if source := c.QueryParam("filter"); source != "" {
		compiled, err := notebook.CompileExpression(source)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid filter: %v", err))
		}
		expr = compiled
	}

	notes, err := s.Notebook.Notes(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list notes").SetInternal(err)
	}
	notes = notebook.Filter(notes, c.QueryParam("tag"), c.QueryParam("q"))
	if expr != nil {
		notes = notebook.FilterExpression(notes, expr)
	}
	return c.JSON(http.StatusOK, &ListNotesResponse{Notes: convertNotesFromStore(notes)})
}

// CreateNote handles POST /api/notes.
func (s *APIV1Service) CreateNote(c echo.Context) error {
	note, err := s.Notebook.AddNote(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create note").SetInternal(err)
	}
	return c.JSON(http.StatusCreated, convertNoteFromStore(note))
}

// UpdateNote handles PUT /api/notes/:id.
func (s *APIV1Service) UpdateNote(c echo.Context) error {
	id, err := parseNoteID(c)
	if err != nil {
		return err
	}
	var req UpdateNoteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	note, err := s.Notebook.UpdateNote(c.Request().Context(), id, req.Title, req.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update note").SetInternal(err)
	}
	if note == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("note %d not found", id))
	}
	return c.JSON(http.StatusOK, convertNoteFromStore(note))
}

// TagNote handles POST /api/notes/:id/tags.
func (s *APIV1Service) TagNote(c echo.Context) error {
	id, err := parseNoteID(c)
	if err != nil {
		return err
	}
	var req TagRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	note, err := s.Notebook.TagNote(ctx, id, req.Tag)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to tag note").SetInternal(err)
	}
	if note == nil {
		// A blank tag is ignored; only an unknown id is an error.
		current, err := s.getNote(c, id)
		if err != nil {
			return err
		}
		note = current
	}
	return c.JSON(http.StatusOK, convertNoteFromStore(note))
}

// NotesRSS handles GET /api/notes/rss.
func (s *APIV1Service) NotesRSS(c echo.Context) error {
	notes, err := s.Notebook.Notes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list notes").SetInternal(err)
	}

	link := c.Scheme() + "://" + c.Request().Host
	feed := &feeds.Feed{
		Title:       "Notes",
		Link:        &feeds.Link{Href: link},
		Description: "Notes from notekeeper",
		Created:     time.Now(),
		Items:       make([]*feeds.Item, 0, len(notes)),
	}
	for _, note := range notes {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          strconv.Itoa(int(note.ID)),
			Title:       note.Title,
			Link:        &feeds.Link{Href: link + "/api/notes?filter=" + url.QueryEscape(fmt.Sprintf("id == %d", note.ID))},
			Description: note.Content,
			Created:     time.Unix(note.CreatedTs, 0),
			Updated:     time.Unix(note.UpdatedTs, 0),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render feed").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (s *APIV1Service) getNote(c echo.Context, id int32) (*store.Note, error) {
	notes, err := s.Notebook.Notes(c.Request().Context())
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to list notes").SetInternal(err)
	}
	for _, note := range notes {
		if note.ID == id {
			return note, nil
		}
	}
	return nil, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("note %d not found", id))
}

func parseNoteID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid note id %q", c.Param("id")))
	}
	return int32(id), nil
}
