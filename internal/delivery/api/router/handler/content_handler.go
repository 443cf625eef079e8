package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/guesssays/med-platform/internal/delivery/api/response"
	"github.com/guesssays/med-platform/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ContentHandlerParams holds dependencies for ContentHandler, injected by Fx.
type ContentHandlerParams struct {
	fx.In

	ContentUC usecase.ContentUsecase
	Logger    *slog.Logger
}

// ContentHandler holds dependencies for content-related handlers
type ContentHandler struct {
	contentUC usecase.ContentUsecase
	logger    *slog.Logger
}

// NewContentHandler is the constructor for ContentHandler
func NewContentHandler(params ContentHandlerParams) *ContentHandler {
	return &ContentHandler{
		contentUC: params.ContentUC,
		logger:    params.Logger,
	}
}

// CreateContentRequest represents the request body for publishing content
type CreateContentRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Kind  string `json:"kind" validate:"omitempty,oneof=article video"`
	Body  string `json:"body"`
}

// CreateContent publishes an article or video entry for the calling doctor
func (h *ContentHandler) CreateContent(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreateContentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	item, err := h.contentUC.CreateContent(c.Request().Context(), &usecase.CreateContentInput{
		User:  user,
		Title: req.Title,
		Kind:  req.Kind,
		Body:  req.Body,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toContentResponse(item))
}

// ListContent lists content, optionally filtered by ?author_id=
func (h *ContentHandler) ListContent(c echo.Context) error {
	authorID, err := optionalQueryID(c, "author_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	items, err := h.contentUC.ListContent(c.Request().Context(), authorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapAll(items, toContentResponse))
}

func (h *ContentHandler) GetContent(c echo.Context) error {
	contentID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	item, err := h.contentUC.GetContent(c.Request().Context(), contentID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toContentResponse(item))
}

// UploadMedia stores the raw request body as the content's media object
func (h *ContentHandler) UploadMedia(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	contentID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	req := c.Request()
	item, err := h.contentUC.UploadMedia(req.Context(), &usecase.UploadMediaInput{
		User:        user,
		ContentID:   contentID,
		ContentType: req.Header.Get(echo.HeaderContentType),
		Body:        req.Body,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toContentResponse(item))
}

// DownloadMedia streams the content's media object back
func (h *ContentHandler) DownloadMedia(c echo.Context) error {
	contentID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	object, err := h.contentUC.OpenMedia(c.Request().Context(), contentID)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer object.Body.Close()

	contentType := object.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	if object.Size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(object.Size, 10))
	}

	return c.Stream(http.StatusOK, contentType, object.Body)
}
