package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"fjacquet/fsv-csv/internal/common"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/parsererror"
	"fjacquet/fsv-csv/internal/validation"
)

// multipartMemory is the part of a multipart form kept in memory; the rest
// spills to temporary files removed after the request.
const multipartMemory = 32 << 20

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+1<<20)

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = s.opts.Export.Format
	}
	if validation.OutputFormat(format) != nil {
		jsonError(w, fmt.Sprintf("Unsupported output format: %s", format), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.tooLarge(w)
			return
		}
		jsonError(w, "No file selected", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		jsonError(w, "No file selected", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	filename := sanitizeFilename(header.Filename)
	if validation.Extension(filename, s.opts.AllowedExtensions) != nil {
		jsonError(w, s.invalidTypeMessage(), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.opts.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "An error occurred: failed to read upload", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.opts.MaxUploadBytes {
		s.tooLarge(w)
		return
	}

	s.log.Debug("Received statement upload",
		logging.Field{Key: logging.FieldFile, Value: filename},
		logging.Field{Key: logging.FieldUploadBytes, Value: len(data)})

	table, err := s.converter.Parse(bytes.NewReader(data))
	if err != nil {
		jsonError(w, "Conversion failed: "+conversionMessage(err), http.StatusUnprocessableEntity)
		return
	}

	var out bytes.Buffer
	export := common.ExportOptions{Format: format, SheetName: s.opts.Export.SheetName}
	if err := common.WriteTable(&out, table, export); err != nil {
		s.log.WithError(err).Error("Failed to write converted table")
		jsonError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	w.Header().Set("Content-Type", common.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, base, common.Extension(format)))
	http.SetCookie(w, &http.Cookie{Name: "download_complete", Value: "true", MaxAge: 10, Path: "/"})
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Bytes())
}

func (s *Server) invalidTypeMessage() string {
	kinds := make([]string, len(s.opts.AllowedExtensions))
	for i, ext := range s.opts.AllowedExtensions {
		kinds[i] = strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return fmt.Sprintf("Invalid file type. Please upload a %s file.", strings.Join(kinds, " or "))
}

func (s *Server) tooLarge(w http.ResponseWriter) {
	jsonError(w, fmt.Sprintf("File size exceeds the maximum limit of %d MB", s.opts.MaxUploadBytes>>20),
		http.StatusRequestEntityTooLarge)
}

// conversionMessage turns a conversion error into the sentence shown to users.
func conversionMessage(err error) string {
	var (
		extractErr *parsererror.ExtractionError
		emptyErr   *parsererror.EmptyResultError
	)
	switch {
	case errors.As(err, &extractErr):
		return "Failed to extract text from the PDF."
	case errors.As(err, &emptyErr):
		return "Could not parse any structured data from the PDF."
	default:
		return "An error occurred during conversion: " + err.Error()
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
