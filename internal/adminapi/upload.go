package adminapi

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dromorongit/Richtymluxe/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxUploadFiles = 10

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func registerUploadRoutes() {
	webserver.ApiPOST("/upload", uploadImage)
	webserver.ApiPOST("/upload-multiple", uploadImages)
}

// checkImageFile validates extension, declared MIME type and size limit.
func checkImageFile(c echo.Context, fh *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "Only image files are allowed"
	}
	if ctype := fh.Header.Get("Content-Type"); ctype != "" && !allowedImageMimes[ctype] {
		return "Only image files are allowed"
	}
	maxMB := GetAppContext(c).GetSettingsInt64Value("upload", "max_size_mb")
	if maxMB <= 0 {
		maxMB = 5
	}
	if fh.Size > maxMB*1024*1024 {
		return "File too large"
	}
	return ""
}

func saveImageFile(c echo.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return uploadStore.Save(c.Request().Context(), fh.Filename, src)
}

func uploadImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FILE", "No file uploaded", nil)
	}
	if msg := checkImageFile(c, fh); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", msg, nil)
	}

	location, err := saveImageFile(c, fh)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store file", err.Error())
	}

	return ok(c, map[string]interface{}{
		"message":  "File uploaded successfully",
		"filePath": location,
	})
}

func uploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse upload", err.Error())
	}
	files := form.File["images"]
	if len(files) == 0 {
		return fail(c, http.StatusBadRequest, "MISSING_FILE", "No files uploaded", nil)
	}
	if len(files) > maxUploadFiles {
		return fail(c, http.StatusBadRequest, "TOO_MANY_FILES", "Too many files uploaded", nil)
	}

	for _, fh := range files {
		if msg := checkImageFile(c, fh); msg != "" {
			return fail(c, http.StatusBadRequest, "INVALID_FILE", msg, nil)
		}
	}

	locations := make([]string, 0, len(files))
	for _, fh := range files {
		location, err := saveImageFile(c, fh)
		if err != nil {
			// the batch is all or nothing: drop files already written
			for _, saved := range locations {
				if rerr := uploadStore.Remove(c.Request().Context(), saved); rerr != nil {
					zap.L().Warn("failed to remove partial upload",
						zap.String("location", saved), zap.Error(rerr))
				}
			}
			return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store file", err.Error())
		}
		locations = append(locations, location)
	}

	return ok(c, map[string]interface{}{
		"message":   "Files uploaded successfully",
		"filePaths": locations,
	})
}
