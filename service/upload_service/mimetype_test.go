package upload_service

import "testing"

func TestIsMimeTypeAllowed(t *testing.T) {
	cases := []struct {
		mimeType string
		want     bool
	}{
		{"image/png", true},
		{"IMAGE/PNG", true},
		{"application/pdf", true},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"application/zip", true},
		{"video/mp4", true},
		{"audio/ogg", true},
		{"application/x-msdownload", false},
		{"text/html", false},
		{"application/octet-stream", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsMimeTypeAllowed(tc.mimeType); got != tc.want {
			t.Errorf("IsMimeTypeAllowed(%q) = %v, want %v", tc.mimeType, got, tc.want)
		}
	}
}

func TestMimeTypeFamilies(t *testing.T) {
	if !IsImageMimeType("image/webp") || IsImageMimeType("video/mp4") {
		t.Error("IsImageMimeType misclassified")
	}
	if !IsVideoMimeType("VIDEO/quicktime") || IsVideoMimeType("audio/wav") {
		t.Error("IsVideoMimeType misclassified")
	}
}
