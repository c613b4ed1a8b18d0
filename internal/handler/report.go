package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lanhtutoicao123/TSL-CLIENT/internal/model"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/service"
)

const mimeMsgpack = "application/msgpack"

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(s *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: s}
}

// Upload returns a handler that forwards the multipart "file" upstream in the given mode.
func (h *ReportHandler) Upload(mode model.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing form file \"file\": " + err.Error()})
			return
		}
		rate, err := parseRate(c.PostForm("symbolRate"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		src := model.SourceFile{Name: fh.Filename, ByteSize: int64(len(content))}
		rep, err := h.svc.Process(c.Request.Context(), mode, src, content, rate)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		respond(c, http.StatusOK, rep)
	}
}

type normalizeReq struct {
	Raw        *model.RawUpstreamResult `json:"raw" binding:"required"`
	SourceFile model.SourceFile         `json:"sourceFile"`
	SymbolRate float64                  `json:"symbolRate"`
}

// Normalize builds a report from an upstream response supplied by the caller.
func (h *ReportHandler) Normalize(c *gin.Context) {
	var req normalizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SymbolRate < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbolRate must be positive"})
		return
	}
	rep, err := h.svc.Build(req.Raw, req.SourceFile, req.SymbolRate)
	if err != nil {
		if errors.Is(err, service.ErrMalformedResponse) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, http.StatusOK, rep)
}

func respond(c *gin.Context, status int, rep *model.Report) {
	c.Header("X-Request-ID", rep.ID)
	if strings.Contains(c.GetHeader("Accept"), mimeMsgpack) {
		b, err := msgpack.Marshal(rep)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(status, mimeMsgpack, b)
		return
	}
	c.JSON(status, rep)
}

func parseRate(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r <= 0 {
		return 0, errors.New("symbolRate must be a positive number")
	}
	return r, nil
}
