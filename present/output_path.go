package present

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"folio/config"
	"folio/state"
	"folio/writing"
)

// buildOutputPath returns output file path for rendered writing. Name comes
// either from writing slug or from user defined template which may produce
// subdirectories. Every path segment is cleaned and, if requested,
// transliterated.
func buildOutputPath(doc *writing.Document, dst string, env *state.LocalEnv) string {
	rc := &env.Cfg.Render
	defaultFile := cleanPathSegment(doc.Slug, rc.FileNameTransliterate) + env.Format.Ext()

	if rc.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expanded, err := doc.ExpandTemplate(config.OutputNameTemplateFieldName, rc.OutputNameTemplate, env.Format.String())
	if err != nil {
		env.Logger("render").Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(dst, defaultFile)
	}
	segments := splitPath(filepath.FromSlash(strings.TrimSpace(expanded)))
	if len(segments) == 0 {
		return filepath.Join(dst, defaultFile)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, dst)
	for _, s := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(s, rc.FileNameTransliterate))
	}
	parts = append(parts, cleanPathSegment(segments[len(segments)-1], rc.FileNameTransliterate)+env.Format.Ext())
	return filepath.Join(parts...)
}

// splitPath breaks path into its elements dropping empty ones, "." and "..",
// so expanded template could never escape destination directory.
func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); ; head, tail = filepath.Split(head) {
		if tail != "" && tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, transliterate bool) string {
	if transliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
