// Package export reads and writes snapshot files. A file is a JSON or YAML
// snapshot, optionally gzip-compressed, optionally sealed with a passphrase.
package export

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"kin/internal/directory"
	kinerrors "kin/internal/errors"
)

// Format selects the snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, fmt.Errorf("unknown format %q (want json or yaml)", s)
	}
}

// FormatForPath infers the encoding from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	for strings.HasSuffix(lower, ".gz") {
		lower = strings.TrimSuffix(lower, ".gz")
	}
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Options controls how a snapshot is written.
type Options struct {
	Format     Format
	Compress   bool
	Passphrase string
}

// Sealed file layout: magic, then a random argon2id salt, then the
// XChaCha20-Poly1305 nonce, then the ciphertext over the encoded payload.
const sealMagic = "KINSEAL1"

const (
	saltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keySize      = chacha20poly1305.KeySize
)

// Encode turns a snapshot into file bytes according to opts.
func Encode(snap *directory.Snapshot, opts Options) ([]byte, error) {
	var data []byte
	var err error
	switch opts.Format {
	case FormatYAML:
		data, err = snap.EncodeYAML()
	default:
		data, err = snap.EncodeJSON()
	}
	if err != nil {
		return nil, err
	}

	if opts.Compress {
		data, err = compress(data)
		if err != nil {
			return nil, err
		}
	}

	if opts.Passphrase != "" {
		data, err = seal(data, opts.Passphrase)
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}

// Decode turns file bytes back into a snapshot. It sniffs the sealed and
// gzip layers, so the caller does not need to know how the file was written.
func Decode(data []byte, passphrase string) (*directory.Snapshot, error) {
	if isSealed(data) {
		if passphrase == "" {
			return nil, kinerrors.New(kinerrors.DecryptFailed, "file is sealed, a passphrase is required", nil)
		}
		var err error
		data, err = open(data, passphrase)
		if err != nil {
			return nil, err
		}
	}

	if isGzip(data) {
		var err error
		data, err = decompress(data)
		if err != nil {
			return nil, kinerrors.New(kinerrors.ImportInvalid, "decompressing snapshot failed", err)
		}
	}

	return directory.DecodeSnapshot(data)
}

// WriteFile encodes the snapshot and writes it to path.
func WriteFile(path string, snap *directory.Snapshot, opts Options) error {
	data, err := Encode(snap, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "writing snapshot file failed", err)
	}
	return nil
}

// ReadFile reads a snapshot file written by WriteFile.
func ReadFile(path, passphrase string) (*directory.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kinerrors.New(kinerrors.StorageFailure, "reading snapshot file failed", err)
	}
	return Decode(data, passphrase)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

func isSealed(data []byte) bool {
	return len(data) >= len(sealMagic) && string(data[:len(sealMagic)]) == sealMagic
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, keySize)
}

func seal(payload []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(sealMagic)+saltSize+len(nonce)+len(payload)+aead.Overhead())
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, payload, nil), nil
}

func open(data []byte, passphrase string) ([]byte, error) {
	body := data[len(sealMagic):]
	nonceSize := chacha20poly1305.NonceSizeX
	if len(body) < saltSize+nonceSize {
		return nil, kinerrors.New(kinerrors.DecryptFailed, "sealed file is truncated", nil)
	}

	salt := body[:saltSize]
	nonce := body[saltSize : saltSize+nonceSize]
	ciphertext := body[saltSize+nonceSize:]

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, kinerrors.New(kinerrors.DecryptFailed, "wrong passphrase or corrupted file", err)
	}
	return payload, nil
}
