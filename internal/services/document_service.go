package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/almhq/license-manager/internal/apperrors"
	"github.com/almhq/license-manager/internal/models"
	"github.com/almhq/license-manager/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// allowedExtensions is the upload whitelist; anything else is rejected
// per file without aborting the batch.
var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// FileFailure reports one rejected file out of an upload batch.
type FileFailure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadResult carries the outcome of a partial-tolerant batch upload.
type UploadResult struct {
	Created  []models.Document `json:"created"`
	Failures []FileFailure     `json:"failures"`
}

type DocumentService struct {
	DB      *gorm.DB
	Store   storage.Store
	Log     *zap.Logger
	MaxSize int64
}

func NewDocumentService(db *gorm.DB, store storage.Store, maxSize int64, log *zap.Logger) *DocumentService {
	return &DocumentService{DB: db, Store: store, MaxSize: maxSize, Log: log}
}

// Upload validates and stores a batch of files for an application. Only the
// owner may upload. One invalid file does not abort the others; the result
// lists created records and per-file failures side by side.
func (s *DocumentService) Upload(applicationID uint, caller *models.User, files []*multipart.FileHeader, documentType string) (*UploadResult, error) {
	var app models.Application
	if err := s.DB.First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application")
		}
		return nil, err
	}
	if err := requireOwner(caller, app.UserID); err != nil {
		return nil, err
	}

	if documentType == "" {
		documentType = "other"
	}

	result := &UploadResult{}
	for _, fh := range files {
		doc, reason := s.acceptFile(applicationID, fh, documentType)
		if reason != "" {
			result.Failures = append(result.Failures, FileFailure{Filename: fh.Filename, Reason: reason})
			continue
		}
		result.Created = append(result.Created, *doc)
	}

	s.Log.Info("document batch processed",
		zap.Uint("application_id", applicationID),
		zap.Int("accepted", len(result.Created)),
		zap.Int("rejected", len(result.Failures)),
	)
	return result, nil
}

// acceptFile validates one file and, if it passes, persists blob and
// metadata. A non-empty reason means rejection.
func (s *DocumentService) acceptFile(applicationID uint, fh *multipart.FileHeader, documentType string) (*models.Document, string) {
	if fh.Size > s.MaxSize {
		return nil, fmt.Sprintf("file exceeds the %d byte limit", s.MaxSize)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mimeType, ok := allowedExtensions[ext]
	if !ok {
		return nil, "file type not allowed; accepted: pdf, doc, docx"
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "could not read uploaded file"
	}
	defer src.Close()

	storedName := uuid.New().String() + ext
	if err := s.Store.Save(storedName, src); err != nil {
		s.Log.Error("blob write failed", zap.String("stored_name", storedName), zap.Error(err))
		return nil, "could not store uploaded file"
	}

	doc := &models.Document{
		ApplicationID:    applicationID,
		StoredFilename:   storedName,
		OriginalFilename: fh.Filename,
		MimeType:         mimeType,
		SizeBytes:        fh.Size,
		DocumentType:     documentType,
	}
	if err := s.DB.Create(doc).Error; err != nil {
		_ = s.Store.Remove(storedName)
		return nil, "could not record uploaded file"
	}
	return doc, ""
}

// Download resolves a document and opens its blob for streaming. The owning
// application is found through the foreign key, not by scanning. Owner or
// administrator only.
func (s *DocumentService) Download(documentID uint, caller *models.User) (*models.Document, io.ReadCloser, error) {
	var doc models.Document
	if err := s.DB.Preload("Application").First(&doc, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("document")
		}
		return nil, nil, err
	}
	if err := requireOwnerOrAdministrator(caller, doc.Application.UserID); err != nil {
		return nil, nil, err
	}
	if !s.Store.Exists(doc.StoredFilename) {
		return nil, nil, apperrors.NotFound("document file")
	}
	rc, err := s.Store.Open(doc.StoredFilename)
	if err != nil {
		return nil, nil, err
	}
	return &doc, rc, nil
}

// Delete removes a document's blob and metadata. Owner or administrator.
func (s *DocumentService) Delete(documentID uint, caller *models.User) error {
	var doc models.Document
	if err := s.DB.Preload("Application").First(&doc, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("document")
		}
		return err
	}
	if err := requireOwnerOrAdministrator(caller, doc.Application.UserID); err != nil {
		return err
	}
	if s.Store.Exists(doc.StoredFilename) {
		if err := s.Store.Remove(doc.StoredFilename); err != nil {
			return err
		}
	}
	return s.DB.Delete(&doc).Error
}
