// Package pattern generates and serializes circlet pattern descriptors.
//
// A [Descriptor] is the complete, self-contained state of one pattern tile:
// its colour polarity, its diameter, how many inner rings and radial lines it
// carries, and one row of seven random fractions per ring and per line. The
// renderer derives every size, offset, rotation and stroke width from those
// fractions by position (see the layout package), so a descriptor fully
// determines what is drawn.
//
// # Generation
//
// A [Generator] draws descriptors from a [Source] of uniform fractions.
// Fields can be pinned with [Overrides]; every field that is not pinned is
// drawn independently:
//
//	g := pattern.NewSeededGenerator(42)
//	d := g.Generate(pattern.Overrides{Diameter: pattern.Int(100)})
//
// The package-level [Generate] and [Next] use a generator over the global
// math/rand/v2 source and are safe for concurrent use. Seeded generators
// are not.
//
// # Tokens
//
// [Encode] turns a descriptor into a short URL-safe token and [Decode]
// reverses it exactly. Decoding is all-or-nothing: a malformed token yields a
// [*DecodeError] (matching [ErrDecode]) and never a partial descriptor.
//
//	token, _ := pattern.Encode(d)
//	back, err := pattern.Decode(token)
package pattern
