package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"docqa-relay/internal/domain"

	"github.com/gen2brain/go-fitz"
)

var pdfMagic = []byte("%PDF-")

// PDFInspector opens a local PDF with MuPDF to make sure the file store
// receives a readable document.
type PDFInspector struct {
	logger domain.Logger
}

// NewPDFInspector creates a new PDF inspector
func NewPDFInspector(logger domain.Logger) *PDFInspector {
	return &PDFInspector{
		logger: logger,
	}
}

// Inspect validates the file at path and returns its page count and title.
func (p *PDFInspector) Inspect(path string) (*domain.DocumentInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	if err := checkPDFHeader(path); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", domain.ErrInvalidPDF, err)
	}
	defer doc.Close()

	info := &domain.DocumentInfo{
		Path:      path,
		Size:      stat.Size(),
		PageCount: doc.NumPage(),
	}
	if info.PageCount == 0 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrInvalidPDF)
	}

	if title, ok := doc.Metadata()["title"]; ok {
		info.Title = strings.TrimSpace(title)
	}

	p.logger.Debug("Inspected PDF", "path", path, "pages", info.PageCount, "title", info.Title)
	return info, nil
}

func checkPDFHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, header); err != nil || !bytes.Equal(header, pdfMagic) {
		return fmt.Errorf("%w: missing PDF header", domain.ErrInvalidPDF)
	}
	return nil
}
