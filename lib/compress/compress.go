// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress shrinks capture image payloads for the wire.
// Raw BMP/RGBA captures compress well; PNG and JPEG payloads usually
// do not, so compression is applied only when it actually wins.
package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/peekaboo-foundation/peekaboo/lib/protocol"
)

// Zstd is the wire tag recorded in CaptureData.Compression.
const Zstd = "zstd"

// maxDecodedBytes bounds decompression output so a hostile payload
// cannot balloon into arbitrary memory. Larger than any plausible
// single-screen capture.
const maxDecodedBytes = 512 << 20

// encoder and decoder are reused across calls; both are safe for
// concurrent use.
var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	encoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}

	decoder, err = zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(maxDecodedBytes),
	)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress returns the zstd-compressed form of data.
func Compress(data []byte) []byte {
	return encoder.EncodeAll(data, nil)
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	result, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return result, nil
}

// PackCapture compresses the image bytes in place when that makes the
// payload smaller. Already-compressed captures are left alone, so
// PackCapture is idempotent.
func PackCapture(capture *protocol.CaptureData) {
	if capture.Compression != "" || len(capture.Data) == 0 {
		return
	}
	compressed := Compress(capture.Data)
	if len(compressed) >= len(capture.Data) {
		return
	}
	capture.Data = compressed
	capture.Compression = Zstd
}

// UnpackCapture restores the original image bytes in place. Captures
// without a compression tag pass through untouched.
func UnpackCapture(capture *protocol.CaptureData) error {
	switch capture.Compression {
	case "":
		return nil
	case Zstd:
		data, err := Decompress(capture.Data)
		if err != nil {
			return err
		}
		capture.Data = data
		capture.Compression = ""
		return nil
	default:
		return fmt.Errorf("unknown capture compression %q", capture.Compression)
	}
}
