package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"event-storefront/internal/models"
)

// multipartBody accumulates form fields, remembering the first write error
type multipartBody struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newMultipart() *multipartBody {
	mp := &multipartBody{}
	mp.w = multipart.NewWriter(&mp.buf)
	return mp
}

func (mp *multipartBody) field(name, value string) {
	if mp.err != nil {
		return
	}
	mp.err = mp.w.WriteField(name, value)
}

func (mp *multipartBody) file(name string, up *models.Upload) {
	if mp.err != nil || up.Empty() {
		return
	}

	filename := up.Filename
	if filename == "" {
		filename = name
	}
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(name), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)

	part, err := mp.w.CreatePart(h)
	if err != nil {
		mp.err = err
		return
	}
	_, mp.err = part.Write(up.Data)
}

func (mp *multipartBody) finish() (io.Reader, string, error) {
	if mp.err != nil {
		return nil, "", mp.err
	}
	if err := mp.w.Close(); err != nil {
		return nil, "", err
	}
	return &mp.buf, mp.w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
