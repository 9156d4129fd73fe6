package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/application/services"
	domain "files-manager-api/internal/domain/file"
	"files-manager-api/internal/interface/api/rest/dto/file"
	"files-manager-api/internal/interface/api/rest/middleware"
	"files-manager-api/internal/interface/api/rest/validator"
)

// base64 of a 32MB payload
const maxUploadBody = int64(48 << 20)

type FileController struct {
	fileService    ports.FileService
	servingService ports.ServingService
	logger         *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	servingService ports.ServingService,
	authService ports.AuthService,
	logger *zap.Logger,
) *FileController {
	fc := &FileController{
		fileService:    fileService,
		servingService: servingService,
		logger:         logger,
	}

	auth := middleware.AuthMiddleware(logger, authService)

	r.POST(RouteFiles, auth, fc.CreateFileHandler)
	r.GET(RouteFiles, auth, fc.GetFilesHandler)
	r.GET(RouteFile, auth, fc.GetFileHandler)
	r.PUT(RouteFilePublish, auth, fc.PublishHandler)
	r.PUT(RouteFileUnpublish, auth, fc.UnpublishHandler)
	r.GET(RouteFileData, middleware.OptionalAuthMiddleware(logger, authService), fc.GetFileDataHandler)

	return fc
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func (fc *FileController) CreateFileHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	var req file.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	f, err := fc.fileService.Upload(c.Request.Context(), userID, file.ToDomainUpload(req))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
		case errors.Is(err, services.ErrMissingType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing type"})
		case errors.Is(err, services.ErrMissingData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		case errors.Is(err, services.ErrInvalidData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		case errors.Is(err, domain.ErrParentNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent not found"})
		case errors.Is(err, domain.ErrParentNotFolder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent is not a folder"})
		case errors.Is(err, services.ErrStoreFile):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot store the file"})
			fc.logger.Error("Upload() error", zap.Error(err), zap.Stringer("user_id", userID))
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to create a file"},
			)
			fc.logger.Error("Upload() error", zap.Error(err), zap.Stringer("user_id", userID))
		}
		return
	}

	c.JSON(http.StatusCreated, file.ToResponseFile(*f))
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}

	f, err := fc.fileService.FindFile(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c)
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a file"},
		)
		fc.logger.Error("FindFile() error", zap.Error(err), zap.Stringer("file_id", id))
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	page := validator.ValidatePage(c.Query("page"))

	parent, err := domain.ParseParentRef(c.Query("parentId"))
	if err != nil {
		// no folder can have this id
		c.JSON(http.StatusOK, file.Files{})
		return
	}

	files, err := fc.fileService.FindFiles(c.Request.Context(), userID, parent, page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		fc.logger.Error("FindFiles() error", zap.Error(err), zap.Stringer("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFiles(files))
}

func (fc *FileController) PublishHandler(c *gin.Context)   { fc.setPublic(c, true) }
func (fc *FileController) UnpublishHandler(c *gin.Context) { fc.setPublic(c, false) }

func (fc *FileController) setPublic(c *gin.Context, isPublic bool) {
	userID, _ := middleware.UserID(c)
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}

	f, err := fc.fileService.SetPublic(c.Request.Context(), userID, id, isPublic)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c)
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a file"},
		)
		fc.logger.Error("SetPublic() error", zap.Error(err), zap.Stringer("file_id", id))
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

// GetFileDataHandler serves the original blob. Token is optional, public
// files are readable by anyone.
func (fc *FileController) GetFileDataHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}

	var caller *uuid.UUID
	if userID, ok := middleware.UserID(c); ok {
		caller = &userID
	}

	data, mimeType, err := fc.servingService.Content(c.Request.Context(), id, caller)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(c)
		case errors.Is(err, domain.ErrNoContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A folder doesn't have content"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to read a file"},
			)
			fc.logger.Error("Content() error", zap.Error(err), zap.Stringer("file_id", id))
		}
		return
	}

	c.Data(http.StatusOK, mimeType, data)
}
