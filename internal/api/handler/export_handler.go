package handler

import (
	"MindGarden/internal/pkg/response"
	"MindGarden/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

func (s *ExportHandler) ExportReflections(c *gin.Context) {
	out, err := s.exportSvc.ExportReflections(c, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
