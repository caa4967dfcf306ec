// Package idgenerator contains the default [domain.IDGenerator] implementation
// using random UUIDs.
package idgenerator

import (
	"crypto/rand"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// IDGenerator implements [domain.IDGenerator].
type IDGenerator struct {
	reader io.Reader
}

// NewIDGenerator returns a new implementation of [domain.IDGenerator].
func NewIDGenerator(opts ...Option) domain.IDGenerator {
	i := IDGenerator{
		reader: rand.Reader,
	}
	for _, opt := range opts {
		opt(&i)
	}
	return &i
}

// GenerateID implements [domain.IDGenerator]. The ID is made of lowercase
// hexadecimal digits taken from as many random UUIDs as needed.
func (i *IDGenerator) GenerateID(l int) (string, error) {
	var b strings.Builder
	b.Grow(l + 32)
	for b.Len() < l {
		id, err := uuid.NewRandomFromReader(i.reader)
		if err != nil {
			return "", err
		}
		b.WriteString(strings.ReplaceAll(id.String(), "-", ""))
	}
	return b.String()[:l], nil
}
