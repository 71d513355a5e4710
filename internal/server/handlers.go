package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/nao1215/senderplus/internal/form"
	"github.com/nao1215/senderplus/internal/model"
)

// packageResponse is the JSON shape of a package record on the wire.
// Status carries the human-readable label, matching what the hosted
// service historically returned; status_display repeats it for newer
// clients that prefer the explicit field.
type packageResponse struct {
	TrackingID       string `json:"tracking_id"`
	Status           string `json:"status"`
	StatusDisplay    string `json:"status_display"`
	SenderName       string `json:"sender_name"`
	SenderPhone      string `json:"sender_phone"`
	SenderEmail      string `json:"sender_email,omitempty"`
	SenderAddress    string `json:"sender_address"`
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientEmail   string `json:"recipient_email,omitempty"`
	RecipientAddress string `json:"recipient_address"`
	PackageName      string `json:"package_name"`
	PackageType      string `json:"package_type"`
	Weight           string `json:"weight"`
	Value            string `json:"value,omitempty"`
	Description      string `json:"description,omitempty"`
	PhotoURL         string `json:"photo_url,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// serializePackage converts a stored row to its wire shape.
func serializePackage(pkg *StoredPackage) packageResponse {
	resp := packageResponse{
		TrackingID:       pkg.TrackingID,
		Status:           pkg.Status.String(),
		StatusDisplay:    pkg.Status.String(),
		SenderName:       pkg.SenderName,
		SenderPhone:      pkg.SenderPhone,
		SenderEmail:      pkg.SenderEmail,
		SenderAddress:    pkg.SenderAddress,
		RecipientName:    pkg.RecipientName,
		RecipientPhone:   pkg.RecipientPhone,
		RecipientEmail:   pkg.RecipientEmail,
		RecipientAddress: pkg.RecipientAddress,
		PackageName:      pkg.PackageName,
		PackageType:      pkg.PackageType,
		Weight:           pkg.Weight,
		Value:            pkg.Value,
		Description:      pkg.Description,
		PhotoURL:         pkg.PhotoPath,
	}
	if !pkg.CreatedAt.IsZero() {
		resp.CreatedAt = pkg.CreatedAt.Format("2006-01-02T15:04:05Z")
	}
	if !pkg.UpdatedAt.IsZero() {
		resp.UpdatedAt = pkg.UpdatedAt.Format("2006-01-02T15:04:05Z")
	}
	return resp
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error response in the service's detail format.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// handleSubmit accepts a multipart submission form and creates a package.
//
// Missing required fields produce a 400 response naming every missing
// field, matching the shape clients expect:
//
//	{"detail": "Missing required fields: sender_name, package_type"}
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		s.logger.Warn("failed to parse submission form", "error", err)
		writeDetail(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	// Every field is stripped before validation and storage; padded input
	// must never survive into the record.
	field := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }

	sub := model.PackageSubmission{
		SenderName:       field("sender_name"),
		SenderPhone:      field("sender_phone"),
		SenderEmail:      field("sender_email"),
		SenderAddress:    field("sender_address"),
		RecipientName:    field("recipient_name"),
		RecipientPhone:   field("recipient_phone"),
		RecipientEmail:   field("recipient_email"),
		RecipientAddress: field("recipient_address"),
		PackageName:      field("package_name"),
		PackageType:      field("package_type"),
		Weight:           field("weight"),
		Value:            field("value"),
		Description:      field("description"),
	}

	if missing := form.MissingFields(&sub); len(missing) > 0 {
		writeDetail(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	weight := sub.Weight
	if weight == "" {
		weight = "0"
	}

	for _, f := range []struct{ name, value string }{
		{"weight", weight},
		{"value", sub.Value},
	} {
		if f.value == "" {
			continue
		}
		if _, err := strconv.ParseFloat(f.value, 64); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid decimal value for "+f.name)
			return
		}
	}

	trackingID := NewTrackingID()

	var photoPath string
	if file, header, err := r.FormFile("photo"); err == nil {
		data, readErr := io.ReadAll(io.LimitReader(file, maxPhotoSize))
		_ = file.Close()
		if readErr != nil {
			s.logger.Warn("failed to read photo upload", "error", readErr)
			writeDetail(w, http.StatusBadRequest, "Invalid photo upload")
			return
		}

		// Surface privacy-sensitive metadata in the service log.
		// The photo is stored as uploaded; senders own the tradeoff.
		for _, warning := range InspectPhoto(data) {
			s.logger.Warn("photo contains personal metadata",
				"tracking_id", trackingID,
				"tag", warning.Tag,
				"note", warning.Note,
			)
		}

		photoPath, err = savePhoto(s.dataDir, trackingID, header.Filename, data)
		if err != nil {
			s.logger.Error("failed to store photo", "tracking_id", trackingID, "error", err)
			writeDetail(w, http.StatusInternalServerError, "Failed to store photo")
			return
		}
	}

	pkg := &StoredPackage{
		TrackingID:       trackingID,
		Status:           model.StageWaitingBus,
		SenderName:       sub.SenderName,
		SenderPhone:      sub.SenderPhone,
		SenderEmail:      sub.SenderEmail,
		SenderAddress:    sub.SenderAddress,
		RecipientName:    sub.RecipientName,
		RecipientPhone:   sub.RecipientPhone,
		RecipientEmail:   sub.RecipientEmail,
		RecipientAddress: sub.RecipientAddress,
		PackageName:      sub.PackageName,
		PackageType:      sub.PackageType,
		Weight:           weight,
		Value:            sub.Value,
		Description:      sub.Description,
		PhotoPath:        photoPath,
	}

	if _, err := s.store.InsertPackage(r.Context(), pkg); err != nil {
		s.logger.Error("failed to store package", "tracking_id", trackingID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to store package")
		return
	}

	s.logger.Info("package submitted",
		"tracking_id", trackingID,
		"package_name", pkg.PackageName,
	)

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":     "Package submitted successfully",
		"tracking_id": trackingID,
	})
}

// handleTrack returns the package record for a tracking ID.
func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	trackingID := r.PathValue("id")

	pkg, err := s.store.GetPackage(r.Context(), trackingID)
	if errors.Is(err, ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		s.logger.Error("failed to load package", "tracking_id", trackingID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to load package")
		return
	}

	writeJSON(w, http.StatusOK, serializePackage(pkg))
}

// handleAdvance moves a package to its next delivery stage and returns
// the refreshed record. A package already delivered is returned unchanged;
// the stored status is authoritative.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	trackingID := r.PathValue("id")

	pkg, err := s.store.AdvanceStatus(r.Context(), trackingID)
	if errors.Is(err, ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		s.logger.Error("failed to advance status", "tracking_id", trackingID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to advance status")
		return
	}

	s.logger.Info("package status advanced",
		"tracking_id", trackingID,
		"status", pkg.Status.Code(),
	)

	writeJSON(w, http.StatusOK, serializePackage(pkg))
}

// handlePhoto serves stored package photos.
func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.photoPath(name))
}

// logRequests wraps a handler with request logging.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request received",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}
