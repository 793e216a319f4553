package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
	"github.com/matzehuels/circlet/pkg/location"
	"github.com/matzehuels/circlet/pkg/observability"
	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/render/layout"
	"github.com/matzehuels/circlet/pkg/render/sink"
)

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	var asURL bool

	cmd := &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Encode descriptor JSON as a share token",
		Long: `Encode reads a pattern descriptor as JSON and prints its token.

The input may be a bare descriptor or the document printed by "generate" and
"decode". With no argument, or "-", the descriptor is read from stdin.`,
		Example: `  circlet generate | circlet encode
  circlet encode pattern.json --url`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runEncode(cmd, input, asURL)
		},
	}

	cmd.Flags().BoolVar(&asURL, "url", false, "print the share URL instead of the bare token")

	return cmd
}

func (c *CLI) runEncode(cmd *cobra.Command, input string, asURL bool) error {
	data, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	d, err := parseDescriptor(data)
	if err != nil {
		return err
	}

	token, err := pattern.Encode(d)
	observability.Codec().OnEncode(cmd.Context(), len(token), err)
	if err != nil {
		return err
	}
	c.Logger.Debug("encoded", "bytes", len(data), "token_len", len(token))

	out := token
	if asURL {
		if out, err = location.ShareTokenURL(c.Config.Share.BaseURL, token); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var withShape bool

	cmd := &cobra.Command{
		Use:   "decode <token|url>",
		Short: "Decode a share token or URL to descriptor JSON",
		Example: `  circlet decode eyJpbnZlcnNlIjp0cnVlLC...
  circlet decode 'https://circlet.example/?t=eyJpbnZlcnNlIjp0cnVlLC...'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDecode(cmd, args[0], withShape)
		},
	}

	cmd.Flags().BoolVar(&withShape, "layout", false, "include the derived drawing geometry")

	return cmd
}

func (c *CLI) runDecode(cmd *cobra.Command, arg string, withShape bool) error {
	token, err := location.TokenFromArg(arg)
	if err != nil {
		return err
	}

	d, err := pattern.Decode(token)
	observability.Codec().OnDecode(cmd.Context(), len(token), err)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidToken, err, "decode")
	}

	url, err := location.ShareTokenURL(c.Config.Share.BaseURL, token)
	if err != nil {
		return err
	}
	data, err := renderDescriptorJSON(d, token, url, c.Config.Palette, withShape)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), data)
}

// =============================================================================
// Helpers
// =============================================================================

// readInput reads a whole file, or r when name is "-".
func readInput(r io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(r)
	}
	data, err := os.ReadFile(name)
	if os.IsNotExist(err) {
		return nil, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "read %s", name)
	}
	return data, err
}

// parseDescriptor accepts a bare descriptor or a document wrapping one
// under "descriptor", and validates it.
func parseDescriptor(data []byte) (pattern.Descriptor, error) {
	var doc struct {
		Descriptor *pattern.Descriptor `json:"descriptor"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return pattern.Descriptor{}, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "parse descriptor JSON")
	}

	var d pattern.Descriptor
	if doc.Descriptor != nil {
		d = *doc.Descriptor
	} else if err := json.Unmarshal(data, &d); err != nil {
		return pattern.Descriptor{}, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "parse descriptor JSON")
	}

	if err := d.Validate(); err != nil {
		return pattern.Descriptor{}, err
	}
	return d, nil
}

func renderDescriptorJSON(d pattern.Descriptor, token, url string, p pattern.Palette, withShape bool) ([]byte, error) {
	opts := []sink.JSONOption{sink.WithJSONToken(token), sink.WithJSONShareURL(url)}
	if withShape {
		opts = append(opts, sink.WithJSONLayout())
	}
	return sink.RenderJSON(d, layout.Build(d, p), opts...)
}

// writeResult writes data to w, ending it with a newline.
func writeResult(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
