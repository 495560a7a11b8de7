package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// CodeAlphabet is the registration code alphabet: uppercase letters and digits
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultCodeLength gives 36^8 (about 2.8e12) possible codes
	DefaultCodeLength = 8
	// MaxCodeLength matches the registration_code column width
	MaxCodeLength = 32
)

// ErrInvalidCodeLength is returned when a generator is configured outside 1..MaxCodeLength
var ErrInvalidCodeLength = errors.New("code length must be between 1 and 32")

// largest multiple of len(CodeAlphabet) that fits in a byte; bytes at or above it are
// rejected so every symbol is equally likely
const codeRejectThreshold = 256 - (256 % len(CodeAlphabet))

// CodeGenerator produces short human-typable registration codes
type CodeGenerator struct {
	reader io.Reader
	length int
}

// NewCodeGenerator creates a generator reading from crypto/rand
func NewCodeGenerator(length int) *CodeGenerator {
	return NewCodeGeneratorWithReader(rand.Reader, length)
}

// NewCodeGeneratorWithReader creates a generator over an arbitrary entropy source
func NewCodeGeneratorWithReader(reader io.Reader, length int) *CodeGenerator {
	if length == 0 {
		length = DefaultCodeLength
	}
	return &CodeGenerator{reader: reader, length: length}
}

// Generate returns a fresh code of the configured length
func (g *CodeGenerator) Generate() (string, error) {
	if g.length < 0 || g.length > MaxCodeLength {
		return "", ErrInvalidCodeLength
	}

	code := make([]byte, 0, g.length)
	buf := make([]byte, g.length*2)
	for len(code) < g.length {
		if _, err := io.ReadFull(g.reader, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= codeRejectThreshold {
				continue
			}
			code = append(code, CodeAlphabet[int(b)%len(CodeAlphabet)])
			if len(code) == g.length {
				break
			}
		}
	}
	return string(code), nil
}
