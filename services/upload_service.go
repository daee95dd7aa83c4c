package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/portfolyo/site/apiclient"
	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
)

// UploadInput, admin formundan gelen dosya.
// Size multipart header'ından gelir; Body en fazla Size byte okunur.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadService interface'i: dosyaları doğrulayıp backend'e iletir.
// Dosya diske yazılmaz; multipart stream doğrudan backend'e akar.
type UploadService interface {
	// UploadFile, genel dosya yükler (görsel veya PDF, ör: CV).
	UploadFile(ctx context.Context, auth models.AuthContext, in UploadInput) (*models.UploadResult, error)
	// UploadProjectImage, proje görseli yükler (sadece görsel).
	UploadProjectImage(ctx context.Context, auth models.AuthContext, in UploadInput) (*models.UploadResult, error)
}

type uploadService struct {
	backend    UploadBackend
	maxSize    int64
	backendURL string
}

// NewUploadService, constructor. backendURL göreli dönen URL'leri mutlak yapmak için kullanılır.
func NewUploadService(backend UploadBackend, maxSize int64, backendURL string) UploadService {
	return &uploadService{
		backend:    backend,
		maxSize:    maxSize,
		backendURL: backendURL,
	}
}

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var fileMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

func (s *uploadService) UploadFile(ctx context.Context, auth models.AuthContext, in UploadInput) (*models.UploadResult, error) {
	file, err := s.prepare(in, fileMimeTypes)
	if err != nil {
		return nil, err
	}
	res, err := s.backend.UploadFile(ctx, auth, file)
	if err != nil {
		return nil, err
	}
	res.URL = AssetURL(s.backendURL, res.URL)
	return res, nil
}

func (s *uploadService) UploadProjectImage(ctx context.Context, auth models.AuthContext, in UploadInput) (*models.UploadResult, error) {
	file, err := s.prepare(in, imageMimeTypes)
	if err != nil {
		return nil, err
	}
	res, err := s.backend.UploadProjectImage(ctx, auth, file)
	if err != nil {
		return nil, err
	}
	res.URL = AssetURL(s.backendURL, res.URL)
	return res, nil
}

// prepare, boyut ve içerik tipini kontrol eder.
//
// İçerik tipi tarayıcının gönderdiği header'a değil dosyanın ilk
// 512 byte'ına bakılarak belirlenir.
func (s *uploadService) prepare(in UploadInput, allowed map[string]bool) (apiclient.File, error) {
	if in.Body == nil || in.Size == 0 {
		return apiclient.File{}, fmt.Errorf("%w: file is required", pkg.ErrBadRequest)
	}
	if in.Size > s.maxSize {
		return apiclient.File{}, fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	br := bufio.NewReaderSize(io.LimitReader(in.Body, s.maxSize), 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return apiclient.File{}, fmt.Errorf("failed to read upload: %w", err)
	}
	mimeBase := strings.TrimSpace(strings.Split(http.DetectContentType(head), ";")[0])
	if !allowed[mimeBase] {
		return apiclient.File{}, fmt.Errorf("%w: file type not allowed: %s", pkg.ErrBadRequest, mimeBase)
	}

	return apiclient.File{
		Name:        sanitizeFilename(in.Filename),
		ContentType: mimeBase,
		Body:        br,
	}, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\x00' {
			return -1
		}
		return r
	}, name)

	if name == "" || name == "." || name == ".." {
		name = "unnamed"
	}
	return name
}

// AssetURL, backend'in döndüğü göreli yolu ("/uploads/a.png") mutlak URL'e çevirir.
// Zaten mutlak olan veya boş değerler olduğu gibi döner.
func AssetURL(backendURL, u string) string {
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || backendURL == "" {
		return u
	}
	return strings.TrimRight(backendURL, "/") + "/" + strings.TrimLeft(u, "/")
}
