package cms

import (
	"strings"

	"folio/writing"
)

const cdnBase = "https://cdn.sanity.io"

// AssetURL builds CDN location from asset reference. Image references look
// like "image-<id>-<w>x<h>-<ext>", file references like "file-<id>-<ext>".
// Empty string is returned for anything else.
func AssetURL(project, dataset, ref string) string {
	kind, rest, ok := strings.Cut(ref, "-")
	if !ok || project == "" || dataset == "" {
		return ""
	}
	parts := strings.Split(rest, "-")
	switch kind {
	case "image":
		if len(parts) < 3 {
			return ""
		}
		ext, dims := parts[len(parts)-1], parts[len(parts)-2]
		id := strings.Join(parts[:len(parts)-2], "-")
		if w, h, ok := strings.Cut(dims, "x"); !ok || !digits(w) || !digits(h) || id == "" || ext == "" {
			return ""
		}
		return cdnBase + "/images/" + project + "/" + dataset + "/" + id + "-" + dims + "." + ext
	case "file":
		if len(parts) < 2 {
			return ""
		}
		ext := parts[len(parts)-1]
		id := strings.Join(parts[:len(parts)-1], "-")
		if id == "" || ext == "" {
			return ""
		}
		return cdnBase + "/files/" + project + "/" + dataset + "/" + id + "." + ext
	}
	return ""
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveAsset returns URL of the asset, building one from reference when
// backend did not dereference it.
func (c *Client) ResolveAsset(a writing.Asset) string {
	if a.URL != "" {
		return a.URL
	}
	return AssetURL(c.project, c.dataset, a.Ref)
}

// resolveAssets fills missing asset URLs in place.
func (c *Client) resolveAssets(doc *writing.Document) {
	if doc.Cover != nil {
		doc.Cover.URL = c.ResolveAsset(*doc.Cover)
	}
	var walk func([]writing.Block)
	walk = func(blocks []writing.Block) {
		for _, b := range blocks {
			switch v := b.(type) {
			case *writing.Image:
				v.Asset.URL = c.ResolveAsset(v.Asset)
			case *writing.Audio:
				v.Asset.URL = c.ResolveAsset(v.Asset)
			case *writing.DialogueGroup:
				walk(v.Content)
			}
		}
	}
	walk(doc.Body)
}
