package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docboard/internal/http/middleware"
	"docboard/internal/model"
	"docboard/internal/review"
	"docboard/internal/service"
	"docboard/internal/store"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Reads are
// served from the store's snapshot; mutations go through the store's command
// methods, which re-fetch on success.
func RegisterRoutes(app *fiber.App, db *sql.DB, st *store.Store, docSvc service.DocumentService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// List documents from the snapshot, filtered then bucketed by tab.
	app.Get("/documents", func(c *fiber.Ctx) error {
		snap := st.Snapshot()

		docs := review.Filter(snap.Documents,
			c.Query("q"),
			c.Query("type"),
			c.Query("department_id"),
		)
		docs = review.ClassifyTab(docs, review.Tab(c.Query("tab", string(review.TabAll))), time.Now())

		return c.JSON(fiber.Map{
			"data":    docs,
			"total":   len(docs),
			"loading": snap.Loading,
		})
	})

	// Get document by ID (bypasses the snapshot for a fresh read)
	app.Get("/documents/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	})

	// Redirect to a short-lived presigned URL for the document's attachment.
	app.Get("/documents/:id/download", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := docSvc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Redirect(url, fiber.StatusFound)
	})

	// Departments are read-only; serve the snapshot half directly.
	app.Get("/departments", func(c *fiber.Ctx) error {
		snap := st.Snapshot()
		return c.JSON(fiber.Map{
			"data":    snap.Departments,
			"total":   len(snap.Departments),
			"loading": snap.Loading,
		})
	})

	// Dashboard stats, recomputed by the store on every refresh.
	app.Get("/stats", func(c *fiber.Ctx) error {
		snap := st.Snapshot()
		return c.JSON(snap.Stats)
	})

	// Create document. Accepts either a JSON body (metadata only) or
	// multipart/form-data with a "document" JSON part and an optional
	// "file" part.
	app.Post("/documents", middleware.RequireIdentity(), func(c *fiber.Ctx) error {
		var draft model.DocumentDraft
		file, err := decodeDocumentRequest(c, &draft)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse document payload")
		}
		if file != nil {
			defer file.close()
		}

		if err := st.Create(c.UserContext(), draft, middleware.UserID(c), file.upload()); err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "created"})
	})

	// Partial update, same payload shapes as create.
	app.Patch("/documents/:id", middleware.RequireIdentity(), func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var update model.DocumentUpdate
		file, err := decodeDocumentRequest(c, &update)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse document payload")
		}
		if file != nil {
			defer file.close()
		}

		if err := st.Update(c.UserContext(), id, update, middleware.UserID(c), file.upload()); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "updated"})
	})

	// Delete document by ID
	app.Delete("/documents/:id", middleware.RequireIdentity(), func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := st.Remove(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// requestFile pairs a service.FileUpload with its open handle.
type requestFile struct {
	fu     service.FileUpload
	closer interface{ Close() error }
}

func (f *requestFile) upload() *service.FileUpload {
	if f == nil {
		return nil
	}
	return &f.fu
}

func (f *requestFile) close() {
	if f != nil && f.closer != nil {
		_ = f.closer.Close()
	}
}

// decodeDocumentRequest parses either a plain JSON body or a multipart form
// with a "document" JSON field and an optional "file" field into dst.
func decodeDocumentRequest(c *fiber.Ctx, dst any) (*requestFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not multipart: the whole body is the document JSON.
		if err := json.Unmarshal(c.Body(), dst); err != nil {
			return nil, err
		}
		return nil, nil
	}

	payload := ""
	if vals := form.Value["document"]; len(vals) > 0 {
		payload = vals[0]
	}
	if payload == "" {
		return nil, errors.New("missing document field")
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return nil, err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil // file part is optional
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &requestFile{
		fu: service.FileUpload{
			Reader:      f,
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: ct,
		},
		closer: f,
	}, nil
}

// serviceError maps service sentinel errors onto the standardized error
// envelope without leaking internals.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrNoAttachment):
		return writeError(c, fiber.StatusNotFound, "NO_ATTACHMENT", "document has no attachment")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrInvalid):
		return writeError(c, fiber.StatusBadRequest, "INVALID_DOCUMENT", "document failed validation")
	case errors.Is(err, service.ErrUpload):
		return writeError(c, fiber.StatusBadGateway, "UPLOAD_FAILED", "file upload failed")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
