package api

import (
	"io"
	"net/http"

	"github.com/nvoss/macrolog/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10 MB

// ExportFoods handles GET /export/foods.csv.
//
//	@Summary		Download the food catalog as CSV
//	@Tags			transfer
//	@Produce		text/csv
//	@Success		200	{string}	string	"CSV payload"
//	@Security		BearerAuth
//	@Router			/export/foods.csv [get]
func (h *Handler) ExportFoods(w http.ResponseWriter, r *http.Request) {
	writeCSV(w, "foods.csv", h.svc.ExportFoods(r.Context()))
}

// ExportLog handles GET /export/log.csv.
//
//	@Summary		Download the consumption log as CSV
//	@Tags			transfer
//	@Produce		text/csv
//	@Success		200	{string}	string	"CSV payload"
//	@Security		BearerAuth
//	@Router			/export/log.csv [get]
func (h *Handler) ExportLog(w http.ResponseWriter, r *http.Request) {
	writeCSV(w, "log.csv", h.svc.ExportLog(r.Context()))
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("ETag", `"`+storage.Sum(data)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportFoods handles POST /import/foods. The uploaded CSV fully replaces
// the catalog after validation; a bad file leaves the prior state untouched.
//
//	@Summary		Replace the food catalog from an uploaded CSV
//	@Tags			transfer
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"foods.csv"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/import/foods [post]
func (h *Handler) ImportFoods(w http.ResponseWriter, r *http.Request) {
	data, ok := readUpload(w, r)
	if !ok {
		return
	}
	rows, err := h.svc.ImportFoods(r.Context(), data)
	if err != nil {
		writeEngineError(w, err, "import foods")
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Rows: rows})
}

// ImportLog handles POST /import/log.
//
//	@Summary		Replace the consumption log from an uploaded CSV
//	@Tags			transfer
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"log.csv"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/import/log [post]
func (h *Handler) ImportLog(w http.ResponseWriter, r *http.Request) {
	data, ok := readUpload(w, r)
	if !ok {
		return
	}
	rows, err := h.svc.ImportLog(r.Context(), data)
	if err != nil {
		writeEngineError(w, err, "import log")
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Rows: rows})
}

// readUpload extracts the "file" part of a multipart upload, or falls back
// to the raw body for text/csv requests.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("multipart field 'file' is required"))
			return nil, false
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("failed to read upload"))
			return nil, false
		}
		return data, true
	}

	data, err := io.ReadAll(r.Body)
	if err != nil || len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("request body is required"))
		return nil, false
	}
	return data, true
}
