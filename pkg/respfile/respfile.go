// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package respfile

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// MaxSize bounds the decompressed size of a response file.
const MaxSize = 64 << 20

// ErrTooLarge is returned for response files larger than MaxSize.
var ErrTooLarge = errors.New("response file too large")

// OS reads response files from the host file system.
type OS struct{}

// ReadFile opens name, reads its full size and closes it, then decodes it.
func (OS) ReadFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() > MaxSize {
		return nil, fmt.Errorf("%s: %w", name, ErrTooLarge)
	}
	buf := make([]byte, st.Size())
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return Decode(buf[:n])
}

// FS reads response files from an fs.FS.
type FS struct {
	FS fs.FS
}

func (f FS) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(f.FS, name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Encoding returns the compression format of data: "zstd", "gzip" or ""
// for plain text.
func Encoding(data []byte) string {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return "zstd"
	case bytes.HasPrefix(data, gzipMagic):
		return "gzip"
	}
	return ""
}

// Decode returns the plain contents of a response file.
func Decode(data []byte) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch enc := Encoding(data); enc {
	case "zstd":
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxSize))
		if err == nil {
			out, err = zr.DecodeAll(data, nil)
			zr.Close()
		}
	case "gzip":
		var gr *gzip.Reader
		gr, err = gzip.NewReader(bytes.NewReader(data))
		if err == nil {
			out, err = io.ReadAll(io.LimitReader(gr, MaxSize+1))
			gr.Close()
		}
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decompress response file: %w", err)
	}
	if len(out) > MaxSize {
		return nil, ErrTooLarge
	}
	return out, nil
}

// Encode compresses text with the named encoding ("zstd" or "gzip"). An
// empty encoding returns text unchanged.
func Encode(text []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "":
		return text, nil
	case "zstd":
		zw, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, err
		}
		defer zw.Close()
		return zw.EncodeAll(text, nil), nil
	case "gzip":
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(text); err != nil {
			return nil, err
		}
		if err := gw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", encoding)
}
