package convert

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv"
)

// officeMimeTypes maps legacy and OpenDocument extensions to the MIME types
// docconv dispatches on.
var officeMimeTypes = map[string]string{
	"doc":  "application/msword",
	"rtf":  "application/rtf",
	"odt":  "application/vnd.oasis.opendocument.text",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// OfficeToText extracts the body text of an office document with docconv.
// Formats docconv cannot read surface as its conversion error.
func OfficeToText(ext string, data []byte) (string, error) {
	mimeType, ok := officeMimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("no office converter for .%s", ext)
	}
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, false)
	if err != nil {
		return "", fmt.Errorf("docconv %s: %w", ext, err)
	}
	return res.Body, nil
}
