package packet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Assemble concatenates the given PDF documents into one stream, keeping
// input order. Empty documents are placeholders for skipped sections and
// contribute no pages.
func Assemble(docs [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, 0, len(docs))
	for _, doc := range docs {
		if len(doc) == 0 {
			continue
		}
		readers = append(readers, bytes.NewReader(doc))
	}
	if len(readers) == 0 {
		return nil, fmt.Errorf("assemble packet: no documents to merge")
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		return nil, fmt.Errorf("assemble packet: %w", err)
	}
	return out.Bytes(), nil
}
