package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"authbackend/models"
	"authbackend/repository"
	"authbackend/utils"

	"go.uber.org/zap"
)

type PDFHandler struct {
	Repo     repository.UserRepository
	SavePath string
	Log      *zap.Logger
}

// ExportUsers generates a PDF of the user roster and saves it. Admin only.
func (h *PDFHandler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	users, err := h.Repo.GetAllUsers(r.Context())
	if err != nil {
		h.Log.Error("failed to list users for export", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "Cannot get the users",
		})
		return
	}

	pdfBytes, err := utils.GenerateUsersPDF(models.PublicUsers(users))
	if err != nil {
		h.Log.Error("failed to generate PDF", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to generate PDF",
		})
		return
	}

	if err := os.MkdirAll(h.SavePath, os.ModePerm); err != nil {
		h.Log.Error("failed to create save directory", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to save PDF",
		})
		return
	}

	filename := fmt.Sprintf("users_%d.pdf", time.Now().Unix())
	savePath := filepath.Join(h.SavePath, filename)
	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		h.Log.Error("failed to save PDF", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to save PDF",
		})
		return
	}

	// Upload to R2 when configured; the local file is the source of truth.
	result := map[string]string{"file": filename}
	if fileURL, err := utils.UploadExport(pdfBytes, filename); err != nil {
		h.Log.Info("skipping R2 upload", zap.Error(err))
	} else {
		result["url"] = fileURL
	}

	h.pruneOldExports(filename)

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User export generated",
		Data:    result,
	})
}

// pruneOldExports drops superseded roster exports, locally and from R2.
// Only the most recent export is kept.
func (h *PDFHandler) pruneOldExports(keep string) {
	entries, err := os.ReadDir(h.SavePath)
	if err != nil {
		h.Log.Warn("failed to scan exports directory", zap.Error(err))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == keep || !strings.HasPrefix(name, "users_") || !strings.HasSuffix(name, ".pdf") {
			continue
		}
		if err := os.Remove(filepath.Join(h.SavePath, name)); err != nil {
			h.Log.Warn("failed to remove old export", zap.String("file", name), zap.Error(err))
		}
		if err := utils.DeleteExport(name); err != nil {
			h.Log.Info("skipping R2 delete", zap.String("file", name), zap.Error(err))
		}
	}
}
