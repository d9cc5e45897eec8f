package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/sheet"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	uploadField     = "file"
)

var allowedUploadExt = map[string]struct{}{
	".xlsx": {},
	".xls":  {},
}

// TransferHandler moves cards between the store and xlsx workbooks.
type TransferHandler struct {
	cardService    CardServicer
	cards          *CardsHandler
	uploadDir      string
	maxUploadBytes int64
	loc            *time.Location
}

func NewTransferHandler(
	cardService CardServicer,
	uploadDir string,
	maxUploadBytes int64,
	loc *time.Location,
) *TransferHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TransferHandler{
		cardService:    cardService,
		cards:          NewCardsHandler(cardService, loc),
		uploadDir:      uploadDir,
		maxUploadBytes: maxUploadBytes,
		loc:            loc,
	}
}

// Import POST RouteGroup + CardsImportRoute. Reads the uploaded workbook and bulk creates its rows. The
// stored upload is removed once the request is done.
func (h *TransferHandler) Import(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, err := c.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			abortWithMessage(c, http.StatusRequestEntityTooLarge, "文件过大")
			return
		}
		abortWithMessage(c, http.StatusBadRequest, msgFileRequired)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedUploadExt[ext]; !ok {
		abortWithMessage(c, http.StatusBadRequest, msgFileType)
		return
	}

	path := filepath.Join(h.uploadDir, uploadName(ext))
	if err = c.SaveUploadedFile(file, path); err != nil {
		abortWithDomainError(c, fmt.Errorf("saving upload: %w", err))
		return
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			_ = c.Error(rmErr).SetType(gin.ErrorTypePrivate)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		abortWithDomainError(c, fmt.Errorf("opening upload: %w", err))
		return
	}
	defer f.Close()

	inputs, err := sheet.Reader{Location: h.loc}.Read(f)
	if err != nil {
		switch {
		case errors.Is(err, sheet.ErrEmpty):
			abortWithMessage(c, http.StatusBadRequest, msgFileEmpty)
			return
		case errors.Is(err, sheet.ErrLegacyFormat):
			abortWithMessage(c, http.StatusBadRequest, msgFileLegacy)
			return
		}
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		abortWithMessage(c, http.StatusBadRequest, msgFileUnreadable)
		return
	}

	h.cards.bulkCreate(c, inputs)
}

// Export GET RouteGroup + CardsExportRoute. Streams the filtered cards as an xlsx attachment.
func (h *TransferHandler) Export(c *gin.Context) {
	var params CardFilterParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx := c.Request.Context()

	cards, err := h.cardService.Export(ctx, params.toArgs())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	filename := fmt.Sprintf("membercard-%d.xlsx", time.Now().UnixMilli())
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Status(http.StatusOK)
	if err = sheet.Write(c.Writer, cards, h.loc); err != nil {
		// headers are gone already, the client gets a truncated body.
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		c.Abort()
	}
}

// uploadName builds a collision free file name for a stored upload.
func uploadName(ext string) string {
	return fmt.Sprintf("membercard-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
