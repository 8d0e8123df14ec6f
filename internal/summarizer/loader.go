package summarizer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadDocument turns an uploaded file into plain text by MIME type.
func LoadDocument(data []byte, mimeType string) (string, error) {
	switch mimeType {
	case "text/plain":
		return string(data), nil
	case "text/csv":
		return loadCSV(data)
	case "application/pdf":
		return loadPDF(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}
}

// loadCSV renders each data row as "header: value" lines so the text keeps
// its column context through chunking.
func loadCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("load csv: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}

	header := rows[0]
	var b strings.Builder
	for _, row := range rows[1:] {
		for i, field := range row {
			name := fmt.Sprintf("column_%d", i+1)
			if i < len(header) {
				name = header[i]
			}
			fmt.Fprintf(&b, "%s: %s\n", name, field)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func loadPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("load pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("load pdf: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("load pdf: %w", err)
	}
	return buf.String(), nil
}
