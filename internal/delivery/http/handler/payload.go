package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
)

const maxUploadSize = 10 << 20 // 10 MiB

// decodePayload decodes the request body into dst. Multipart requests
// carry the JSON payload in the "data" form field plus an optional
// "profileImage" file part; plain requests carry a JSON body. The
// returned file is nil when no image was uploaded.
func decodePayload(r *http.Request, dst interface{}) (multipart.File, *multipart.FileHeader, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, nil, err
		}

		if data := r.FormValue("data"); data != "" {
			if err := json.Unmarshal([]byte(data), dst); err != nil {
				return nil, nil, err
			}
		}

		file, header, err := r.FormFile("profileImage")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return nil, nil, nil
			}
			return nil, nil, err
		}
		return file, header, nil
	}

	return nil, nil, json.NewDecoder(r.Body).Decode(dst)
}
