package render

import (
	"bytes"
	"context"
	"testing"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><rect width="10" height="10" fill="#555"/></svg>`

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", pdf[:min(len(pdf), 8)])
	}
}

func TestConvertCancelled(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ToPDF(ctx, []byte(tinySVG)); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestToPDFMissingConverter(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := ToPDF(context.Background(), []byte(tinySVG))
	if !cerrors.Is(err, cerrors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}
