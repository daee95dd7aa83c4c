package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/portfolyo/site/models"
)

// File, backend'e multipart olarak iletilecek bir dosya.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// upload, dosyayı "file" alanında multipart/form-data olarak gönderir.
//
// Gövde io.Pipe ile akıtılır; dosya belleğe ikinci kez kopyalanmaz.
func (c *Client) upload(ctx context.Context, path string, auth models.AuthContext, file File, out any) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeFilePart(mw, file)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		auth:        &auth,
		body:        pr,
		contentType: mw.FormDataContentType(),
	}, out)

	// İstek erken biterse yazan goroutine bloklanmasın.
	pr.CloseWithError(io.ErrClosedPipe)
	return err
}

func writeFilePart(mw *multipart.Writer, file File) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return fmt.Errorf("copy upload body: %w", err)
	}
	return nil
}

// UploadFile, POST /resources/upload: genel dosya yükleme (avatar, CV). Yanıt {"url": "..."}.
func (c *Client) UploadFile(ctx context.Context, auth models.AuthContext, file File) (*models.UploadResult, error) {
	var resp models.UploadResult
	if err := c.upload(ctx, "/resources/upload", auth, file, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
