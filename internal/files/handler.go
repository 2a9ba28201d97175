package files

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/filedrop/service/internal/config"
	"github.com/filedrop/service/internal/response"
)

// maxUploadMemory is the in-memory threshold for multipart parsing; larger
// files spill to temp files.
const maxUploadMemory = 32 << 20

// Handler holds HTTP handlers for the upload and listing endpoints.
type Handler struct {
	svc *Service
	cfg *config.Config
	log logrus.FieldLogger
}

// NewHandler creates a new files Handler.
func NewHandler(svc *Service, cfg *config.Config, log logrus.FieldLogger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// ListingResponse is the wire shape of the listing endpoint.
type ListingResponse struct {
	Files []Record `json:"files"`
}

// UploadResponse is the wire shape of a successful upload.
type UploadResponse struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

// ReadinessResponse is the wire shape of the upload readiness probe.
type ReadinessResponse struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	Credentials string `json:"credentials"`
	Bucket      string `json:"bucket"`
}

// Listing godoc
//
//	@Summary		List uploaded files
//	@Description	Returns all uploaded files newest-first, each with a download URL. Pass studentId to keep only that student's files.
//	@Tags			files
//	@Produce		json
//	@Param			studentId	query		string	false	"filter by student id"
//	@Success		200			{object}	ListingResponse
//	@Failure		500			{object}	response.ErrorBody
//	@Router			/files-listing [get]
func (h *Handler) Listing(w http.ResponseWriter, r *http.Request) {
	var (
		records []Record
		err     error
	)
	if studentID := r.URL.Query().Get("studentId"); studentID != "" {
		records, err = h.svc.ListForOwner(r.Context(), studentID)
	} else {
		records, err = h.svc.ListAll(r.Context())
	}
	if err != nil {
		h.storageError(w, "list files", err)
		return
	}

	response.OK(w, ListingResponse{Files: records})
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Accepts a multipart form upload and stores it in the bucket. The optional studentId is embedded in the stored name; public=true requests a permanent public URL instead of a 7-day signed one.
//	@Tags			files
//	@Accept			mpfd
//	@Produce		json
//	@Param			file		formData	file	true	"file to upload"
//	@Param			studentId	formData	string	false	"owner student id"
//	@Param			public		formData	string	false	"make the file publicly readable"
//	@Success		200	{object}	UploadResponse
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	studentID := r.FormValue("studentId")
	public := r.FormValue("public") == "true"
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := h.svc.Upload(r.Context(), header.Filename, file, header.Size, contentType, studentID, public)
	if err != nil {
		h.storageError(w, "upload file", err)
		return
	}

	h.log.WithFields(logrus.Fields{"key": res.Key, "size": header.Size}).Info("file uploaded")
	response.OK(w, UploadResponse{
		Message:  "File uploaded successfully",
		FileName: res.Key,
		URL:      res.URL,
	})
}

// Readiness godoc
//
//	@Summary		Upload API readiness probe
//	@Description	Reports whether the upload API is ready and whether storage credentials were found.
//	@Tags			files
//	@Produce		json
//	@Success		200	{object}	ReadinessResponse
//	@Router			/upload [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	credentials := "missing"
	if h.cfg.HasCredentials() {
		credentials = "found"
	}
	response.OK(w, ReadinessResponse{
		Message:     "Upload API is ready",
		Status:      "ok",
		Credentials: credentials,
		Bucket:      h.cfg.StorageBucket,
	})
}

// TestEnv godoc
//
//	@Summary		Credential source diagnostics
//	@Description	Reports which credential sources are present, without exposing their values.
//	@Tags			files
//	@Produce		json
//	@Success		200	{object}	config.SourceStatus
//	@Router			/test-env [get]
func (h *Handler) TestEnv(w http.ResponseWriter, r *http.Request) {
	response.OK(w, config.Sources(h.cfg.KeyDir))
}

// storageError maps service failures onto the API's two 500 flavors: a
// generic message for configuration problems (the detail is only logged) and
// the backend's message passed through for everything else.
func (h *Handler) storageError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrNotConfigured) {
		h.log.WithError(h.cfg.CredentialsErr).Error("storage not configured")
		response.InternalError(w, ErrNotConfigured.Error())
		return
	}
	h.log.WithError(err).Errorf("%s failed", op)
	response.InternalError(w, err.Error())
}
