package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// OverBytesUnderRunes returns a string whose byte length is four times its rune count.
func OverBytesUnderRunes(count int) string {
	return strings.Repeat("😁", count)
}

// Envelope mirrors the JSON answer shape, with data kept raw for the caller to decode.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
}

// DecodeEnvelope reads and closes the response body.
func DecodeEnvelope(res *http.Response) (Envelope, error) {
	defer res.Body.Close()
	var env Envelope
	err := json.NewDecoder(res.Body).Decode(&env)
	return env, err
}

// MultipartFile builds a multipart body holding one file under field.
func MultipartFile(field, filename string, content []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(content); err != nil {
		return nil, "", err
	}
	if err = w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
