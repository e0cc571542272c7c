package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rcwtools/paintsum/internal/common"
	"github.com/rcwtools/paintsum/internal/gasrig"
	"github.com/rcwtools/paintsum/internal/model"
	"github.com/rcwtools/paintsum/internal/worker"
)

const (
	maxUploadBytes = 50 << 20 // 50 MiB

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// uploadResponse is the body returned by the upload endpoint.
type uploadResponse struct {
	JobID string `json:"job_id"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "request must include a file upload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("failed to close upload", "error", closeErr)
		}
	}()

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
		writeError(w, http.StatusBadRequest, "file must be an Excel file (.xlsx or .xls)")
		return
	}

	jobID := uuid.NewString()

	if err := os.MkdirAll(s.cfg.UploadDir, 0750); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}
	uploadPath := filepath.Join(s.cfg.UploadDir, jobID+".xlsx")
	if err := saveUpload(uploadPath, file); err != nil {
		slog.Error("failed to save upload", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save uploaded file")
		return
	}

	job := &model.Job{
		ID:      jobID,
		Status:  model.JobQueued,
		Message: "file uploaded, job queued",
	}
	if err := s.store.CreateJob(r.Context(), job); err != nil {
		slog.Error("failed to create job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	if err := s.pool.Enqueue(worker.Task{JobID: jobID, InputPath: uploadPath}); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server is busy, try again later")
		return
	}

	common.LogInfo("upload accepted", common.Fields{"job_id": jobID, "filename": header.Filename})
	writeJSON(w, http.StatusOK, uploadResponse{JobID: jobID})
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	return dst.Close()
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, err := s.store.GetJob(r.Context(), jobID)
	if errors.Is(err, common.ErrJobNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("job %s not found", jobID))
		return
	}
	if err != nil {
		slog.Error("failed to load job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, err := s.store.GetJob(r.Context(), jobID)
	if errors.Is(err, common.ErrJobNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("job %s not found", jobID))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}

	if job.Status != model.JobSucceeded {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("job %s has not completed successfully, current status: %s", jobID, job.Status))
		return
	}
	if job.Result == nil || job.Result.OutputPath == "" {
		writeError(w, http.StatusNotFound, fmt.Sprintf("output file not found for job %s", jobID))
		return
	}
	if _, statErr := os.Stat(job.Result.OutputPath); statErr != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("output file not found for job %s", jobID))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(job.Result.OutputPath)))
	http.ServeFile(w, r, job.Result.OutputPath)
}

func (s *Server) handleGasRig(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "request must include a file upload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("failed to close upload", "error", closeErr)
		}
	}()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		writeError(w, http.StatusBadRequest, "file must be an Excel file (.xlsx)")
		return
	}

	rate := s.cfg.GasRigRate
	if rate <= 0 {
		rate = gasrig.DefaultRate
	}

	costs, err := gasrig.ComputeJobCosts(file, rate)
	if err != nil {
		slog.Error("gas and rig processing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error processing file")
		return
	}
	if len(costs) == 0 {
		writeError(w, http.StatusBadRequest,
			"no job data found in file; the file must contain location rows with 4-digit job numbers")
		return
	}

	output, err := gasrig.BuildOutputWorkbook(costs)
	if err != nil {
		slog.Error("gas and rig output build failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error building output file")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "gas_rig_summary_"+header.Filename))
	if _, err := w.Write(output); err != nil {
		slog.Error("failed to write gas and rig response", "error", err)
	}
}
