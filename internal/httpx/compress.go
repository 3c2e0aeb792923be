package httpx

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "zstd, gzip"

// zstdDecoder is shared; DecodeAll is safe for concurrent use.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("httpx: zstd decoder initialization failed: " + err.Error())
	}
}

// decompress undoes the Content-Encoding of a response body.
func decompress(encoding string, body []byte) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, nil
	case "zstd":
		res, err := zstdDecoder.DecodeAll(body, nil)
		if err != nil {
			return nil, fmt.Errorf("httpx: zstd body: %w", err)
		}
		return res, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("httpx: gzip body: %w", err)
		}
		defer zr.Close()
		res, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("httpx: gzip body: %w", err)
		}
		return res, nil
	}
	return nil, fmt.Errorf("httpx: unsupported content encoding %q", encoding)
}
