package ingestion

import (
	"fmt"
	"os"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// preflight verifies the stored document is actually parseable before an
// engine process is spawned for it. Chunking stays the engine's job; this
// only rejects uploads the engine is guaranteed to choke on.
func preflight(path string, ext string) error {
	switch ext {
	case ".pdf":
		f, err := pdf.Open(path)
		if err != nil {
			return fmt.Errorf("open pdf: %w", err)
		}
		if f.NumPage() < 1 {
			return fmt.Errorf("pdf has no pages")
		}
		return nil
	case ".docx", ".odt", ".rtf", ".txt":
		if _, err := cat.File(path); err != nil {
			return fmt.Errorf("extract text: %w", err)
		}
		return nil
	default:
		// Formats the extractors do not cover are only checked for
		// non-emptiness; the engine owns their parsing.
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.Size() == 0 {
			return fmt.Errorf("empty file")
		}
		return nil
	}
}
