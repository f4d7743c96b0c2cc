package handler

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"hairconnect/internal/usecase"
	"hairconnect/pkg/errors"
)

// maxMultipartMemory keeps small forms in memory and spills the rest to disk.
const maxMultipartMemory = 32 << 20

// multipartFiles opens every file under field. The returned close func must
// be called once the uploads have been consumed.
func multipartFiles(form *multipart.Form, field string) ([]*usecase.Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	if form == nil {
		return nil, closeAll, nil
	}

	var uploads []*usecase.Upload
	for _, header := range form.File[field] {
		src, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, errors.Internal("Unable to read file", err)
		}
		opened = append(opened, src)
		uploads = append(uploads, &usecase.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      src,
		})
	}
	return uploads, closeAll, nil
}

// singleFile returns the first file under field, or nil when absent.
func singleFile(form *multipart.Form, field string) (*usecase.Upload, func(), error) {
	uploads, closeAll, err := multipartFiles(form, field)
	if err != nil {
		return nil, closeAll, err
	}
	if len(uploads) > 1 {
		closeAll()
		return nil, func() {}, errors.BadRequest("Only one "+field+" file is allowed", nil)
	}
	if len(uploads) == 0 {
		return nil, closeAll, nil
	}
	return uploads[0], closeAll, nil
}

func parseMultipart(c echo.Context) (*multipart.Form, error) {
	if err := c.Request().ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, errors.BadRequest("Invalid multipart form", err)
	}
	return c.Request().MultipartForm, nil
}
