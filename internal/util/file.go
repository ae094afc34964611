package util

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaterialTypes are the MIME prefixes accepted as lesson material.
var MaterialTypes = []string{"text/"}

// SniffMimeType detects the content type of r from its first 512 bytes and
// checks it against allowedTypes (prefixes or full types). The returned reader
// still yields the whole content.
func SniffMimeType(r io.Reader, allowedTypes []string) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", err
	}

	mimeType := http.DetectContentType(head)
	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) {
			return br, mimeType, nil
		}
	}
	return nil, mimeType, fmt.Errorf("%w: %s", ErrUnsupportedMaterial, mimeType)
}
