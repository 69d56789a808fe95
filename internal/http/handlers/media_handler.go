package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/sitecraft/agency-backend/internal/dto"
	"github.com/sitecraft/agency-backend/internal/http/handlers/common"
	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/repository"
	"github.com/sitecraft/agency-backend/internal/service"
	"github.com/sitecraft/agency-backend/internal/storage"
)

// Разрешённые типы вложений: брифы, макеты, архивы и изображения.
var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/zip":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".zip":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler управляет загрузкой вложений и их привязкой к заявкам.
type MediaHandler struct {
	repo    *repository.MediaRepository
	storage *storage.FileStorage
	tasks   *service.TaskService
}

// NewMediaHandler создаёт хэндлер.
func NewMediaHandler(repo *repository.MediaRepository, storage *storage.FileStorage, tasks *service.TaskService) *MediaHandler {
	return &MediaHandler{repo: repo, storage: storage, tasks: tasks}
}

// Upload обрабатывает POST /api/admin/media.
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "поле file обязательно"})
		return
	}
	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл не может быть пустым"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемое расширение %s", ext),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	// Тип файла определяется по магическим байтам, а не по расширению
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось определить тип файла"})
		return
	}

	contentType := kind.MIME.Value
	if !allowedMimeTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый тип файла (%s)", contentType),
		})
		return
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось сбросить позицию файла"})
			return
		}
	}

	relativePath, size, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	media := &models.MediaFile{
		UploadedBy: &userID,
		FilePath:   filepath.ToSlash(relativePath),
		FileType:   contentType,
		FileSize:   size,
	}

	if err := h.repo.Create(c.Request.Context(), media); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, media)
}

// AttachToTask обрабатывает POST /api/admin/tasks/:id/attachments.
func (h *MediaHandler) AttachToTask(c *gin.Context) {
	taskID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.AttachMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media, err := h.repo.GetByID(c.Request.Context(), req.MediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "файл не найден"})
			return
		}
		_ = c.Error(err)
		return
	}

	attachment, err := h.tasks.AttachMedia(c.Request.Context(), taskID, media.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	attachment.Media = media

	c.JSON(http.StatusCreated, attachment)
}

// Delete обрабатывает DELETE /api/admin/media/:id.
func (h *MediaHandler) Delete(c *gin.Context) {
	mediaID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media, err := h.repo.GetByID(c.Request.Context(), mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "файл не найден"})
			return
		}
		_ = c.Error(err)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), mediaID); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.storage.Delete(c.Request.Context(), media.FilePath); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
