package handler

import (
    "io"
    "net/http"
    "os"
    "path/filepath"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/condo-booking/internal/utils"
)

// UploadHandler stores admin-uploaded images on disk and returns the URL
// they are served under.  The route is gated by the admin session
// middleware; no API key grants access here.
type UploadHandler struct {
    Dir string // destination directory, also mounted at /uploads
}

// NewUploadHandler constructs an UploadHandler writing into dir.
func NewUploadHandler(dir string) *UploadHandler {
    return &UploadHandler{Dir: dir}
}

// allowed image extensions, lower case
var imageExt = map[string]bool{
    ".png":  true,
    ".jpg":  true,
    ".jpeg": true,
    ".gif":  true,
    ".webp": true,
}

// Upload handles POST /api/upload.  It accepts a multipart form with an
// "image" file field, writes the file under a random name (the client
// name is never trusted) and responds with {"url": "/uploads/<name>"}.
func (h *UploadHandler) Upload(c echo.Context) error {
    fh, err := c.FormFile("image")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
    }
    ext := strings.ToLower(filepath.Ext(fh.Filename))
    if !imageExt[ext] {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
    }

    src, err := fh.Open()
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read upload"})
    }
    defer src.Close()

    if err := os.MkdirAll(h.Dir, 0o755); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store upload"})
    }
    name, err := utils.RandomHex(16)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store upload"})
    }
    name += ext

    dst, err := os.Create(filepath.Join(h.Dir, name))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store upload"})
    }
    defer dst.Close()
    if _, err := io.Copy(dst, src); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store upload"})
    }

    return c.JSON(http.StatusOK, echo.Map{"url": "/uploads/" + name})
}
