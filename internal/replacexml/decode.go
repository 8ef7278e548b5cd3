package replacexml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
)

// docStart opens every replacement document the formatter emits.
const docStart = "<?xml"

// replacementsDoc mirrors the <replacements> root element of one document.
type replacementsDoc struct {
	XMLName          xml.Name      `xml:"replacements"`
	IncompleteFormat string        `xml:"incomplete_format,attr"`
	Replacements     []Replacement `xml:"replacement"`
}

// DecodeBatch decodes a combined report blob covering len(files) input files.
// The returned slice is parallel to files: out[i] is the report for files[i].
// Any malformed document aborts the whole batch; there is no partial result.
func DecodeBatch(blob []byte, files []string) ([]FileReport, error) {
	docs, err := splitDocuments(blob)
	if err != nil {
		return nil, err
	}
	if len(docs) != len(files) {
		return nil, fmt.Errorf("replacement report: expected %d documents, got %d", len(files), len(docs))
	}

	out := make([]FileReport, len(files))
	for i, doc := range docs {
		report, err := decodeDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("replacement report for %s: %w", files[i], err)
		}
		report.Path = files[i]
		out[i] = report
	}
	return out, nil
}

// splitDocuments cuts the blob into one segment per "<?xml" prologue.
// An empty (or whitespace-only) blob yields zero segments; any other bytes
// outside a document are malformed input.
func splitDocuments(blob []byte) ([][]byte, error) {
	marker := []byte(docStart)

	first := bytes.Index(blob, marker)
	if first < 0 {
		if len(bytes.TrimSpace(blob)) != 0 {
			return nil, fmt.Errorf("replacement report: no %q document marker found", docStart)
		}
		return nil, nil
	}
	if len(bytes.TrimSpace(blob[:first])) != 0 {
		return nil, fmt.Errorf("replacement report: unexpected content before first document")
	}

	var docs [][]byte
	start := first
	for {
		next := bytes.Index(blob[start+len(marker):], marker)
		if next < 0 {
			docs = append(docs, blob[start:])
			break
		}
		end := start + len(marker) + next
		docs = append(docs, blob[start:end])
		start = end
	}
	return docs, nil
}

func decodeDocument(doc []byte) (FileReport, error) {
	var parsed replacementsDoc
	if err := xml.Unmarshal(doc, &parsed); err != nil {
		return FileReport{}, fmt.Errorf("malformed document: %w", err)
	}

	for _, r := range parsed.Replacements {
		if r.Offset < 0 || r.Length < 0 {
			return FileReport{}, fmt.Errorf("negative offset or length in replacement (offset=%d length=%d)", r.Offset, r.Length)
		}
	}

	report := FileReport{
		Replacements:     parsed.Replacements,
		IncompleteFormat: parsed.IncompleteFormat == "true",
	}

	// Форматтер обещает возрастающие оффсеты, но однокурсорный проход по
	// индексу строк на этом ломается молча — поэтому проверяем и чиним сами.
	if !sort.SliceIsSorted(report.Replacements, func(i, j int) bool {
		return report.Replacements[i].Offset < report.Replacements[j].Offset
	}) {
		sort.SliceStable(report.Replacements, func(i, j int) bool {
			return report.Replacements[i].Offset < report.Replacements[j].Offset
		})
		report.Reordered = true
	}
	return report, nil
}
