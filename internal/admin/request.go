package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"web-travelsite/internal/apiclient"

	"github.com/gofiber/fiber/v2"
)

const maxUploadFiles = 20

// decodeWrite reads an entity from a JSON body, or from a multipart body
// whose "data" field holds the JSON and whose "images" parts are files.
func decodeWrite(c *fiber.Ctx, into any) ([]apiclient.Upload, *multipart.Form, error) {
	if !isMultipart(c) {
		if err := c.BodyParser(into); err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		return nil, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid multipart payload")
	}
	data := form.Value["data"]
	if len(data) == 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "multipart payload needs a data field")
	}
	if err := json.Unmarshal([]byte(data[0]), into); err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid data field")
	}

	files, err := readUploads(form.File["images"])
	if err != nil {
		return nil, nil, err
	}
	return files, form, nil
}

func readUploads(headers []*multipart.FileHeader) ([]apiclient.Upload, error) {
	if len(headers) > maxUploadFiles {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("at most %d images per request", maxUploadFiles))
	}
	uploads := make([]apiclient.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "unreadable upload")
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "unreadable upload")
		}
		uploads = append(uploads, apiclient.Upload{
			Field:       "images",
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Data:        data,
		})
	}
	return uploads, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}
