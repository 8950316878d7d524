package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/session"
)

// ListDocuments returns every document.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := c.do(ctx, request{Method: http.MethodGet, Route: "/employee/documents", Path: "/employee/documents"}, &docs)
	return docs, err
}

// GetDocument returns one document.
func (c *Client) GetDocument(ctx context.Context, id int64) (*Document, error) {
	var doc Document
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/employee/documents/{id}",
		Path:   fmt.Sprintf("/employee/documents/%d", id),
	}, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateDocument creates a document. assignedTo is optional; zero leaves it unassigned.
func (c *Client) CreateDocument(ctx context.Context, doc Document, createdBy, assignedTo session.UserID) (*Document, error) {
	q := query("createdById", createdBy.String())
	if assignedTo != 0 {
		q.Set("assignedToId", assignedTo.String())
	}
	var created Document
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/employee/documents",
		Path:   "/employee/documents",
		Query:  q,
		Body:   doc,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDocument replaces a document.
func (c *Client) UpdateDocument(ctx context.Context, doc Document) (*Document, error) {
	var updated Document
	err := c.do(ctx, request{
		Method: http.MethodPut,
		Route:  "/employee/documents/{id}",
		Path:   fmt.Sprintf("/employee/documents/%d", doc.ID),
		Body:   doc,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UploadDocument sends file content as multipart form data.
func (c *Client) UploadDocument(ctx context.Context, content io.Reader, fileName, documentType string) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIEncode, "failed to build upload", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read upload content", err)
	}
	if err := w.WriteField("documentType", documentType); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIEncode, "failed to build upload", err)
	}
	if err := w.WriteField("fileName", fileName); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIEncode, "failed to build upload", err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIEncode, "failed to build upload", err)
	}

	var result UploadResult
	err = c.do(ctx, request{
		Method:      http.MethodPost,
		Route:       "/employee/documents/upload",
		Path:        "/employee/documents/upload",
		rawBody:     &buf,
		contentType: w.FormDataContentType(),
	}, &result)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, errors.NewBackendError(http.StatusInternalServerError, result.Message)
	}
	return &result, nil
}
