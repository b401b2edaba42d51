package build

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Export clears outputDir and writes every page of the registry into it.
func (b *Builder) Export(outputDir string) error {
	slog.Info("building site", "output", outputDir)

	reg, err := b.Registry()
	if err != nil {
		return err
	}

	slog.Info("cleaning output directory")
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("removing output directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ctx := Context{AssetURL: Fingerprints(reg)}

	slog.Info("writing pages")
	for _, p := range reg.Paths() {
		body, err := b.Render(reg[p], ctx)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", p, err)
		}
		if err := writeFile(filepath.Join(outputDir, outputPath(p)), body); err != nil {
			return err
		}
	}

	slog.Info("build complete", "pages", len(reg))
	return nil
}

// outputPath maps a registry path to a file path relative to the output
// directory. Directory-style paths get an index.html.
func outputPath(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	return filepath.FromSlash(p)
}

func writeFile(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
