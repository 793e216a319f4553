package pipeline

import (
	"context"

	cerrors "github.com/matzehuels/circlet/pkg/errors"
	"github.com/matzehuels/circlet/pkg/location"
	"github.com/matzehuels/circlet/pkg/observability"
	"github.com/matzehuels/circlet/pkg/pattern"
)

// Resolve returns the pattern opts asks for and how it was obtained.
//
// A token (or a share URL carrying one) is decoded; a decode failure keeps
// the *pattern.DecodeError in its chain, so errors.Is(err, pattern.ErrDecode)
// holds. Otherwise a pattern is generated from opts.Seed, or from system
// randomness when no seed is set, with opts.Overrides pinned. Overrides are
// validated like decoded tokens.
func Resolve(ctx context.Context, opts Options) (pattern.Descriptor, string, error) {
	if err := ctx.Err(); err != nil {
		return pattern.Descriptor{}, "", err
	}

	if opts.Token != "" {
		token, err := location.TokenFromArg(opts.Token)
		if err != nil {
			return pattern.Descriptor{}, SourceToken, err
		}
		d, err := pattern.Decode(token)
		observability.Codec().OnDecode(ctx, len(token), err)
		if err != nil {
			return pattern.Descriptor{}, SourceToken, cerrors.Wrap(cerrors.ErrCodeInvalidToken, err, "decode token")
		}
		return d, SourceToken, nil
	}

	gen := pattern.NewGenerator(nil)
	source := SourceRandom
	if opts.Seed != nil {
		gen = pattern.NewSeededGenerator(*opts.Seed)
		source = SourceSeed
	}
	if opts.HasOverrides() && source == SourceRandom {
		source = SourceOverrides
	}

	d := gen.Generate(opts.Overrides)
	if err := d.Validate(); err != nil {
		return pattern.Descriptor{}, source, err
	}
	return d, source, nil
}
