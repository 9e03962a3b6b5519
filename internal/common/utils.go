package common

import (
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
)

// ContentHash computes the xxh3 hash of content and returns it as hex.
func ContentHash(data []byte) string {
	return formatDigest(xxh3.Hash(data))
}

// DigestWriter hashes every byte successfully written through it.
type DigestWriter struct {
	w io.Writer
	h *xxh3.Hasher
}

// NewDigestWriter wraps w.
func NewDigestWriter(w io.Writer) *DigestWriter {
	return &DigestWriter{w: w, h: xxh3.New()}
}

func (d *DigestWriter) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	_, _ = d.h.Write(p[:n]) // never fails
	return n, err
}

// Sum returns the digest of the bytes written so far, in the same format as ContentHash.
func (d *DigestWriter) Sum() string {
	return formatDigest(d.h.Sum64())
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
