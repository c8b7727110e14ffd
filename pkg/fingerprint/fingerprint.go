// Package fingerprint computes content hashes for files.
//
// The content hash is the identity of a file in the catalogue: the hex-encoded
// SHA-1 of its bytes. Files are streamed in fixed-size chunks, so memory usage
// does not depend on the file size.
package fingerprint

import (
	"crypto/sha1" //#nosec
	"encoding/hex"
	"io"
	"os"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/afero"
)

const (
	// DefaultChunkSize is the size of the buffer used to stream files through the hasher
	DefaultChunkSize = 4 * units.KiB

	// HexSize is the length of a hex-encoded content hash
	HexSize = 2 * sha1.Size
)

// Option to build a fingerprint Maker
type Option func(*Maker)

// ChunkSize sets the size of the chunks read from a file
func ChunkSize(sz int64) Option {
	return func(m *Maker) {
		if sz > 0 {
			m.chunkSize = sz
		}
	}
}

// Fs sets the file system files are read from
func Fs(fs afero.Fs) Option {
	return func(m *Maker) {
		if fs != nil {
			m.fs = fs
		}
	}
}

// Maker computes content hashes
type Maker struct {
	fs        afero.Fs
	chunkSize int64
}

// New fingerprint Maker, reading from the OS file system by default
func New(opts ...Option) *Maker {
	m := &Maker{
		fs:        afero.NewOsFs(),
		chunkSize: DefaultChunkSize,
	}

	for _, apply := range opts {
		apply(m)
	}
	return m
}

// Stat describes a file at the time it was fingerprinted
type Stat struct {
	Hash    string
	Size    int64
	ModTime time.Time
}

// ProcessWithStat computes the content hash of the file at path, along with its size and modification time
func (m *Maker) ProcessWithStat(path string) (Stat, error) {
	f, err := m.fs.Open(path)
	if err != nil {
		return Stat{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Stat{}, err
	}
	if fi.IsDir() {
		return Stat{}, &os.PathError{Op: "hash", Path: path, Err: errIsDir}
	}

	digest, err := m.Sum(f)
	if err != nil {
		return Stat{}, err
	}
	return Stat{Hash: digest, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

// Sum streams a reader through the hasher and returns the hex digest
func (m *Maker) Sum(r io.Reader) (string, error) {
	hasher := sha1.New() //#nosec
	buf := make([]byte, m.chunkSize)
	if _, err := io.CopyBuffer(hasher, onlyReader{r}, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// IsHash tells if a string looks like a full hex-encoded content hash
func IsHash(s string) bool {
	if len(s) != HexSize {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

type errString string

func (e errString) Error() string { return string(e) }

const errIsDir errString = "is a directory"

// onlyReader hides WriterTo implementations, so the chunk buffer is always used
type onlyReader struct {
	io.Reader
}
