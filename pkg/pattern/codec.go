package pattern

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrDecode matches every error returned by Decode.
var ErrDecode = errors.New("invalid pattern token")

// Decode stages reported in DecodeError.Stage.
const (
	StageAlphabet = "alphabet" // token is not base64
	StageSyntax   = "syntax"   // payload is not a JSON object
	StageFields   = "fields"   // required field missing or invalid
)

// DecodeError reports why a token could not be turned into a descriptor.
// The caller's only recourse is to discard the whole token.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode pattern token (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) hold for every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// wireDescriptor is the token payload. Color and BgColor are derived from
// Inverse and only written so that links stay readable by older clients.
type wireDescriptor struct {
	Color      string       `json:"color,omitempty"`
	BgColor    string       `json:"bgColor,omitempty"`
	Inverse    *bool        `json:"inverse"`
	Diameter   *int         `json:"diameter"`
	NumCircles *int         `json:"numCircles"`
	NumLines   *int         `json:"numLines"`
	RArrs      [][]*float64 `json:"rArrs"`
}

// Encode serializes d into a URL-safe token. d must be valid.
func Encode(d Descriptor) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	fg, bg := DefaultPalette.Colors(d.Inverse)
	w := wireDescriptor{
		Color:      fg,
		BgColor:    bg,
		Inverse:    &d.Inverse,
		Diameter:   &d.Diameter,
		NumCircles: &d.NumCircles,
		NumLines:   &d.NumLines,
		RArrs:      make([][]*float64, len(d.RArrs)),
	}
	for i, row := range d.RArrs {
		w.RArrs[i] = make([]*float64, len(row))
		for k := range row {
			w.RArrs[i][k] = &row[k]
		}
	}
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("marshal descriptor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// MustEncode is like Encode but panics on an invalid descriptor.
func MustEncode(d Descriptor) string {
	token, err := Encode(d)
	if err != nil {
		panic(err)
	}
	return token
}

// Decode parses a token produced by Encode. Tokens in the standard base64
// alphabet, padded or not, are accepted as well.
func Decode(token string) (Descriptor, error) {
	data, err := decodeAlphabet(token)
	if err != nil {
		return Descriptor{}, &DecodeError{Stage: StageAlphabet, Err: err}
	}

	if err := checkKeys(data); err != nil {
		return Descriptor{}, &DecodeError{Stage: StageSyntax, Err: err}
	}

	var w wireDescriptor
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return Descriptor{}, &DecodeError{Stage: StageSyntax, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return Descriptor{}, &DecodeError{Stage: StageSyntax, Err: errors.New("trailing data after payload")}
	}

	d, err := w.descriptor()
	if err != nil {
		return Descriptor{}, &DecodeError{Stage: StageFields, Err: err}
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, &DecodeError{Stage: StageFields, Err: err}
	}
	return d, nil
}

func decodeAlphabet(token string) ([]byte, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	if strings.ContainsAny(token, "\r\n") {
		return nil, errors.New("line break in token")
	}
	t := strings.TrimRight(token, "=")
	t = strings.NewReplacer("+", "-", "/", "_").Replace(t)
	return base64.RawURLEncoding.DecodeString(t)
}

// wireKeys are the payload's field names, matched case-sensitively.
var wireKeys = []string{"color", "bgColor", "inverse", "diameter", "numCircles", "numLines", "rArrs"}

// checkKeys rejects what encoding/json would let through: a field name in
// the wrong case and a field given twice. Unknown fields are ignored.
func checkKeys(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // {
		return err
	}
	seen := make(map[string]bool, len(fields))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		if seen[key] {
			return fmt.Errorf("duplicate field %q", key)
		}
		seen[key] = true
		for _, want := range wireKeys {
			if key != want && strings.EqualFold(key, want) {
				return fmt.Errorf("field %q should be %q", key, want)
			}
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}
	return nil
}

func (w wireDescriptor) descriptor() (Descriptor, error) {
	switch {
	case w.Inverse == nil:
		return Descriptor{}, errors.New("missing inverse")
	case w.Diameter == nil:
		return Descriptor{}, errors.New("missing diameter")
	case w.NumCircles == nil:
		return Descriptor{}, errors.New("missing numCircles")
	case w.NumLines == nil:
		return Descriptor{}, errors.New("missing numLines")
	case w.RArrs == nil:
		return Descriptor{}, errors.New("missing rArrs")
	}

	rows := make([][]float64, len(w.RArrs))
	for i, row := range w.RArrs {
		if row == nil {
			return Descriptor{}, fmt.Errorf("rArrs[%d] is null", i)
		}
		rows[i] = make([]float64, len(row))
		for k, x := range row {
			if x == nil {
				return Descriptor{}, fmt.Errorf("rArrs[%d][%d] is null", i, k)
			}
			rows[i][k] = *x
		}
	}

	return Descriptor{
		Inverse:    *w.Inverse,
		Diameter:   *w.Diameter,
		NumCircles: *w.NumCircles,
		NumLines:   *w.NumLines,
		RArrs:      rows,
	}, nil
}
