package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ministryworks/dms-go/internal/application"
	"github.com/ministryworks/dms-go/internal/domain/document"
	"github.com/ministryworks/dms-go/pkg/response"
	"github.com/ministryworks/dms-go/pkg/utils"
)

type DocumentHandler struct {
	svc     *application.DocumentService
	comment *application.CommentService
}

func NewDocumentHandler(svc *application.DocumentService, comment *application.CommentService) *DocumentHandler {
	return &DocumentHandler{svc: svc, comment: comment}
}

// Nginx's non-standard status for requests the client abandoned.
const statusClientClosedRequest = 499

// writeDocumentError maps service errors onto HTTP status codes.
func writeDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		c.JSON(statusClientClosedRequest, response.ErrorResponse{Error: "Request canceled"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, response.ErrorResponse{Error: "Request timed out"})
	case errors.Is(err, application.ErrDocumentNotFound),
		errors.Is(err, application.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrDuplicateReference):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrForbidden):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrIndexOutOfRange),
		errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrValidation):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrUploadFailed):
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}
}

// collectUploads opens every multipart file header and returns the
// uploads plus a closer for the opened readers.
func collectUploads(headers []*multipart.FileHeader) ([]application.FileUpload, func(), error) {
	uploads := make([]application.FileUpload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		uploads = append(uploads, application.FileUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}
	return uploads, closeAll, nil
}

// CreateDocument godoc
// @Summary Upload a document with one or more attachments
// @Tags documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} document.Document
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Reference number already used"
// @Failure 502 {object} response.ErrorResponse "Upload failed"
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input document.CreateDocumentDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	uploads, closeAll, err := collectUploads(form.File["files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Unreadable file"})
		return
	}
	defer closeAll()

	doc, err := h.svc.CreateDocument(c.Request.Context(), uid, input, uploads)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// SearchDocuments godoc
// @Summary Search documents by metadata filters
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Success 200 {array} document.Document
// @Router /documents [get]
func (h *DocumentHandler) SearchDocuments(c *gin.Context) {
	var q document.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid query"})
		return
	}

	docs, err := h.svc.Search(q)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	if docs == nil {
		docs = []document.Document{}
	}
	c.JSON(http.StatusOK, docs)
}

// GetDocument godoc
// @Summary Get a document by id
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Success 200 {object} document.Document
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	doc, err := h.svc.GetDocument(id)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpdateDocument godoc
// @Summary Update document metadata
// @Tags documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} document.Document
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	uid, _ := utils.GetUserIDFromContext(c)
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	var input document.UpdateDocumentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	doc, err := h.svc.UpdateDocument(uid, id, input)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DeleteDocument godoc
// @Summary Delete a document
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	uid, _ := utils.GetUserIDFromContext(c)
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	if err := h.svc.DeleteDocument(uid, id); err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Document deleted successfully"})
}

// GetStatus godoc
// @Summary Get a document's decision status
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.StatusResponse
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id}/status [get]
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	status, err := h.svc.GetStatus(id)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.StatusResponse{Status: string(status)})
}

// UpdateStatus godoc
// @Summary Approve or reject a document
// @Tags documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} document.Document
// @Failure 400 {object} response.ErrorResponse "Invalid status"
// @Failure 403 {object} response.ErrorResponse "Approver role required"
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	uid, _ := utils.GetUserIDFromContext(c)
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	var input document.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	doc, err := h.svc.UpdateStatus(uid, id, input)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// SignDocument godoc
// @Summary Sign a document
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Success 200 {object} document.Document
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id}/sign [post]
func (h *DocumentHandler) SignDocument(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	doc, err := h.svc.Sign(uid, id)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// CreateReply godoc
// @Summary Upload a reply document under a parent
// @Tags documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} document.Document
// @Failure 404 {object} response.ErrorResponse "Parent document not found"
// @Router /documents/{id}/replies [post]
func (h *DocumentHandler) CreateReply(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	var input document.CreateReplyDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	uploads, closeAll, err := collectUploads(form.File["files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Unreadable file"})
		return
	}
	defer closeAll()

	reply, err := h.svc.CreateReply(c.Request.Context(), uid, id, input, uploads)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// GetReplies godoc
// @Summary List the replies to a document
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Success 200 {array} document.Document
// @Router /documents/{id}/replies [get]
func (h *DocumentHandler) GetReplies(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	replies, err := h.svc.GetReplies(id)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	if replies == nil {
		replies = []document.Document{}
	}
	c.JSON(http.StatusOK, replies)
}

// ReplaceAttachment godoc
// @Summary Replace the attachment at an index
// @Tags documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} document.Document
// @Failure 400 {object} response.ErrorResponse "Index out of range"
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id}/files/{index} [put]
func (h *DocumentHandler) ReplaceAttachment(c *gin.Context) {
	uid, _ := utils.GetUserIDFromContext(c)
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}
	index, err := utils.ParseIndexParam(c, "index")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid index"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Unreadable file"})
		return
	}
	defer f.Close()

	doc, err := h.svc.ReplaceAttachment(c.Request.Context(), uid, id, index, application.FileUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	})
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListApprovals godoc
// @Summary List the decision history of a document
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Success 200 {array} approval.Approval
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id}/approvals [get]
func (h *DocumentHandler) ListApprovals(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	rows, err := h.svc.ListApprovals(id)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListComments godoc
// @Summary List a document's comment thread
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Success 200 {array} document.Comment
// @Router /documents/{id}/comments [get]
func (h *DocumentHandler) ListComments(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	comments, err := h.comment.List(id)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	if comments == nil {
		comments = []document.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment godoc
// @Summary Add a comment to a document
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]int
// @Failure 404 {object} response.ErrorResponse "Document not found"
// @Router /documents/{id}/comments [post]
func (h *DocumentHandler) AddComment(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}

	var input document.CommentInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "content is required"})
		return
	}

	index, err := h.comment.Add(uid, id, input)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"index": index})
}

// EditComment godoc
// @Summary Edit a comment by index
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} document.Comment
// @Failure 403 {object} response.ErrorResponse "Only the author may edit"
// @Failure 404 {object} response.ErrorResponse "Comment not found"
// @Router /documents/{id}/comments/{index} [put]
func (h *DocumentHandler) EditComment(c *gin.Context) {
	uid, _ := utils.GetUserIDFromContext(c)
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}
	index, err := utils.ParseIndexParam(c, "index")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid index"})
		return
	}

	var input document.CommentInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "content is required"})
		return
	}

	comment, err := h.comment.Edit(uid, id, index, input)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment by index
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Failure 403 {object} response.ErrorResponse "Only the author may delete"
// @Failure 404 {object} response.ErrorResponse "Comment not found"
// @Router /documents/{id}/comments/{index} [delete]
func (h *DocumentHandler) DeleteComment(c *gin.Context) {
	uid, _ := utils.GetUserIDFromContext(c)
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}
	index, err := utils.ParseIndexParam(c, "index")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid index"})
		return
	}

	if err := h.comment.Delete(uid, id, index); err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Comment deleted successfully"})
}

// ReplyComment godoc
// @Summary Reply to a comment by index
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} document.Comment
// @Failure 404 {object} response.ErrorResponse "Comment not found"
// @Router /documents/{id}/comments/{index}/replies [post]
func (h *DocumentHandler) ReplyComment(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid document id"})
		return
	}
	index, err := utils.ParseIndexParam(c, "index")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid index"})
		return
	}

	var input document.CommentInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "content is required"})
		return
	}

	reply, err := h.comment.AddReply(uid, id, index, input)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}
