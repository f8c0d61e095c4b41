package driver

import "testing"

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatRGBA8, "RGBA8"},
		{FormatRGBA8SRGB, "RGBA8-sRGB"},
		{Format(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormatBytesPerPixel(t *testing.T) {
	if FormatRGBA8.BytesPerPixel() != 4 || FormatRGBA8SRGB.BytesPerPixel() != 4 {
		t.Error("both formats must be 4 bytes per pixel")
	}
}

func TestInvalidID(t *testing.T) {
	if InvalidID != 0 {
		t.Errorf("InvalidID = %d, want 0", InvalidID)
	}
}
