// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

import (
	"encoding/binary"
	"fmt"
)

func (s *jpegScanner) metadata() *Metadata {
	m := &Metadata{
		Width:  s.width,
		Height: s.height,
	}

	x := s.exif
	if x == nil {
		return m
	}

	m.HasEXIF = true
	m.BigEndian = x.hdr.byteOrder == binary.BigEndian
	m.IFDs = x.chains

	d := &valueDecoder{c: s.c, hdr: x.hdr}

	// Only the first IFD of each chain is reported.
	m.Main = s.fields(d, namespaceIFD0, firstIFD(x.chains.Main), fieldsIFD0)
	m.Camera = s.fields(d, namespaceExif, firstIFD(x.chains.Exif), fieldsExif)
	m.GPS = s.fields(d, namespaceGPS, firstIFD(x.chains.GPS), fieldsGPS)

	for _, f := range m.Main {
		if f.ID != tagOrientation {
			continue
		}
		if u, ok := toUint(f.Value); ok {
			if o := Orientation(u); u <= 8 && o.IsValid() {
				m.Orientation = o
			} else {
				s.opts.Warnf("invalid orientation %d", u)
			}
		}
	}

	for _, tag := range []uint16{tagGPSLatitude, tagGPSLongitude} {
		for _, f := range m.GPS {
			// Only degree, minute, second triples make up the position.
			if f.ID == tag && len(toFloats(f.Value)) == 3 {
				m.DMS += f.Formatted
			}
		}
	}

	return m
}

func (s *jpegScanner) fields(d *valueDecoder, namespace string, ifd IFD, specs map[uint16]fieldSpec) []Field {
	var fields []Field

	ref := func(tag uint16) string {
		for _, e := range ifd {
			if e.Tag == tag {
				return printableString(toString(d.decode(e)))
			}
		}
		return ""
	}

	for _, e := range ifd {
		if exifIFDPointers[e.Tag] {
			continue
		}

		spec, found := specs[e.Tag]
		if !found {
			if !s.opts.IncludeUnknown {
				continue
			}
			spec = fieldSpec{name: fmt.Sprintf("%s0x%x", UnknownPrefix, e.Tag), kind: kindNumber}
		}

		v := d.decode(e)

		fields = append(fields, Field{
			ID:        e.Tag,
			Tag:       spec.name,
			Namespace: namespace,
			Value:     v,
			Formatted: formatValue(spec, v, ref),
		})
	}

	return fields
}

func firstIFD(chain []IFD) IFD {
	if len(chain) == 0 {
		return nil
	}
	return chain[0]
}
