package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
)

// Converter is the librsvg command used for PDF output.
const Converter = "rsvg-convert"

const installHint = "install librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)"

// Available reports whether the converter is on PATH.
func Available() bool {
	_, err := exec.LookPath(Converter)
	return err == nil
}

// ToPDF converts an SVG document to PDF. It fails with UNSUPPORTED when
// rsvg-convert is missing.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	if !Available() {
		return nil, cerrors.New(cerrors.ErrCodeUnsupported, "pdf output needs %s: %s", Converter, installHint)
	}

	cmd := exec.CommandContext(ctx, Converter, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, err, "%s: %s", Converter, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
