package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/services"
)

// formOverhead, multipart gövdesinde dosya dışındaki alanlar için pay.
const formOverhead = 1 << 20

// parseMultipart, body'yi maxSize+formOverhead ile sınırlar ve formu parse eder.
// multipart olmayan form'lar (dosya alanı boş bırakılmış) da kabul edilir.
func parseMultipart(r *http.Request, maxSize int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxSize+formOverhead)
	err := r.ParseMultipartForm(32 << 10)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: file too large", pkg.ErrBadRequest)
		}
		return fmt.Errorf("%w: invalid form", pkg.ErrBadRequest)
	}
	return nil
}

// formFile, multipart dosya alanını UploadInput'a çevirir.
// Alan yoksa veya boş seçilmişse ok=false döner.
func formFile(r *http.Request, field string) (services.UploadInput, bool, error) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return services.UploadInput{}, false, nil
	}
	if err != nil {
		return services.UploadInput{}, false, fmt.Errorf("%w: invalid file", pkg.ErrBadRequest)
	}
	if header.Size == 0 {
		f.Close()
		return services.UploadInput{}, false, nil
	}
	return services.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}, true, nil
}

func closeUpload(in services.UploadInput) {
	if c, ok := in.Body.(io.Closer); ok {
		c.Close()
	}
}
