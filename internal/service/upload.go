package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
)

// UploadPolicy bounds accepted files by MIME type and size
type UploadPolicy struct {
	Types   []string
	MaxSize int64
}

var (
	// PaymentProofPolicy accepts transfer receipts
	PaymentProofPolicy = UploadPolicy{
		Types:   []string{"image/jpeg", "image/png", "image/jpg"},
		MaxSize: 2 << 20,
	}

	// PerfumeImagePolicy accepts catalog images
	PerfumeImagePolicy = UploadPolicy{
		Types:   []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		MaxSize: 5 << 20,
	}
)

// Check validates one upload
func (p UploadPolicy) Check(up apiclient.Upload) error {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(up.ContentType, ";", 2)[0]))
	allowed := false
	for _, t := range p.Types {
		if ct == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%s: %w", up.Filename, domain.ErrUnsupportedFileType)
	}
	if up.Size > p.MaxSize {
		return fmt.Errorf("%s: %w", up.Filename, domain.ErrFileTooLarge)
	}
	return nil
}

// FileRejection names a file that was skipped and why
type FileRejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Partition splits uploads into accepted files and per-file rejections
func (p UploadPolicy) Partition(uploads []apiclient.Upload) ([]apiclient.Upload, []FileRejection) {
	var valid []apiclient.Upload
	var rejected []FileRejection
	for _, up := range uploads {
		if err := p.Check(up); err != nil {
			rejected = append(rejected, FileRejection{Filename: up.Filename, Reason: p.reason(err)})
			continue
		}
		valid = append(valid, up)
	}
	return valid, rejected
}

func (p UploadPolicy) reason(err error) string {
	if errors.Is(err, domain.ErrFileTooLarge) {
		return fmt.Sprintf("ukuran melebihi %dMB", p.MaxSize>>20)
	}
	return "format tidak didukung"
}
