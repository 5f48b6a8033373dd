package pbf

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire field numbers of the fontstack glyph schema.
const (
	fieldStacks = 1

	fieldStackName   = 1
	fieldStackRange  = 2
	fieldStackGlyphs = 3

	fieldGlyphID      = 1
	fieldGlyphBitmap  = 2
	fieldGlyphWidth   = 3
	fieldGlyphHeight  = 4
	fieldGlyphLeft    = 5
	fieldGlyphTop     = 6
	fieldGlyphAdvance = 7
)

// Marshal encodes g into fontstack PBF wire format.
func Marshal(g *Glyphs) []byte {
	var b []byte
	for _, s := range g.Stacks {
		b = protowire.AppendTag(b, fieldStacks, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalStack(s))
	}
	return b
}

func marshalStack(s *Fontstack) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldStackName, protowire.BytesType)
	b = protowire.AppendString(b, s.Name)
	b = protowire.AppendTag(b, fieldStackRange, protowire.BytesType)
	b = protowire.AppendString(b, s.Range)
	for _, g := range s.Glyphs {
		b = protowire.AppendTag(b, fieldStackGlyphs, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalGlyph(g))
	}
	return b
}

func marshalGlyph(g *Glyph) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldGlyphID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.ID))
	if g.Bitmap != nil {
		b = protowire.AppendTag(b, fieldGlyphBitmap, protowire.BytesType)
		b = protowire.AppendBytes(b, g.Bitmap)
	}
	b = protowire.AppendTag(b, fieldGlyphWidth, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Width))
	b = protowire.AppendTag(b, fieldGlyphHeight, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Height))
	// Left and top are sint32 on the wire, so zigzag.
	b = protowire.AppendTag(b, fieldGlyphLeft, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(g.Left)))
	b = protowire.AppendTag(b, fieldGlyphTop, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(g.Top)))
	b = protowire.AppendTag(b, fieldGlyphAdvance, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Advance))
	return b
}

// Unmarshal decodes fontstack PBF wire format. Unknown fields are
// skipped, so messages written against extended schemas still decode.
func Unmarshal(data []byte) (*Glyphs, error) {
	g := &Glyphs{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("pbf: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		if num == fieldStacks && typ == protowire.BytesType {
			raw, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed fontstack: %w", protowire.ParseError(m))
			}
			data = data[m:]
			s, err := unmarshalStack(raw)
			if err != nil {
				return nil, err
			}
			g.Stacks = append(g.Stacks, s)
			continue
		}

		m := protowire.ConsumeFieldValue(num, typ, data)
		if m < 0 {
			return nil, fmt.Errorf("pbf: malformed field %d: %w", num, protowire.ParseError(m))
		}
		data = data[m:]
	}
	return g, nil
}

func unmarshalStack(data []byte) (*Fontstack, error) {
	s := &Fontstack{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("pbf: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldStackName && typ == protowire.BytesType:
			v, m := protowire.ConsumeString(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed fontstack name: %w", protowire.ParseError(m))
			}
			data = data[m:]
			s.Name = v
		case num == fieldStackRange && typ == protowire.BytesType:
			v, m := protowire.ConsumeString(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed fontstack range: %w", protowire.ParseError(m))
			}
			data = data[m:]
			s.Range = v
		case num == fieldStackGlyphs && typ == protowire.BytesType:
			raw, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed glyph: %w", protowire.ParseError(m))
			}
			data = data[m:]
			g, err := unmarshalGlyph(raw)
			if err != nil {
				return nil, err
			}
			s.Glyphs = append(s.Glyphs, g)
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed field %d: %w", num, protowire.ParseError(m))
			}
			data = data[m:]
		}
	}
	return s, nil
}

func unmarshalGlyph(data []byte) (*Glyph, error) {
	g := &Glyph{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("pbf: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldGlyphID && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed glyph id: %w", protowire.ParseError(m))
			}
			data = data[m:]
			g.ID = uint32(v)
		case num == fieldGlyphBitmap && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed glyph bitmap: %w", protowire.ParseError(m))
			}
			data = data[m:]
			// Copy out of the input buffer. An empty copy stays non-nil
			// so field presence survives a round trip.
			bm := make([]byte, len(v))
			copy(bm, v)
			g.Bitmap = bm
		case num == fieldGlyphWidth && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed glyph width: %w", protowire.ParseError(m))
			}
			data = data[m:]
			g.Width = uint32(v)
		case num == fieldGlyphHeight && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed glyph height: %w", protowire.ParseError(m))
			}
			data = data[m:]
			g.Height = uint32(v)
		case num == fieldGlyphLeft && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed glyph left: %w", protowire.ParseError(m))
			}
			data = data[m:]
			g.Left = int32(protowire.DecodeZigZag(v))
		case num == fieldGlyphTop && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed glyph top: %w", protowire.ParseError(m))
			}
			data = data[m:]
			g.Top = int32(protowire.DecodeZigZag(v))
		case num == fieldGlyphAdvance && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed glyph advance: %w", protowire.ParseError(m))
			}
			data = data[m:]
			g.Advance = uint32(v)
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, fmt.Errorf("pbf: malformed field %d: %w", num, protowire.ParseError(m))
			}
			data = data[m:]
		}
	}
	return g, nil
}
