package cms

import "testing"

func TestAssetURL(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"image-abc123-600x400-jpg", "https://cdn.sanity.io/images/p/d/abc123-600x400.jpg"},
		{"image-a-b-1x2-webp", "https://cdn.sanity.io/images/p/d/a-b-1x2.webp"},
		{"file-aud789-mp3", "https://cdn.sanity.io/files/p/d/aud789.mp3"},
		{"image-abc123-jpg", ""},
		{"image-abc123-AxB-jpg", ""},
		{"file-mp3", ""},
		{"video-abc-mp4", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := AssetURL("p", "d", tt.ref); got != tt.want {
				t.Errorf("AssetURL(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}
