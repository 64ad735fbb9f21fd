// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package jpegexif

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

const (
	namespaceIFD0 = "IFD0"
	namespaceExif = "IFD0/ExifIFD"
	namespaceGPS  = "IFD0/GPSInfoIFD"
)

const (
	tagOrientation     = 0x0112
	tagGPSLatitudeRef  = 0x0001
	tagGPSLatitude     = 0x0002
	tagGPSLongitudeRef = 0x0003
	tagGPSLongitude    = 0x0004
)

// fieldKind selects how a decoded value is formatted.
type fieldKind int

const (
	kindNumber      fieldKind = iota // Plain number(s), optional unit.
	kindASCII                        // Text, trailing NULs trimmed.
	kindRational                     // num/den as a decimal, optional unit.
	kindRawRational                  // num/den as written.
	kindAPEX                         // num/den as written, marked as an APEX value.
	kindEnum                         // SHORT looked up in enum.
	kindFlash                        // Flash bit field.
	kindVersion                      // 4 bytes shown as characters.
	kindDMS                          // Degrees, minutes, seconds with hemisphere.
	kindTime                         // Hours, minutes, seconds.
)

type fieldSpec struct {
	name string
	kind fieldKind
	unit string

	// kindEnum.
	enum     map[uint16]string
	fallback string

	// kindNumber: label used for a zero value.
	zero string

	// kindDMS: the tag holding the hemisphere and its default.
	refTag     uint16
	defaultRef string
}

var (
	resolutionUnits = map[uint16]string{2: "inches", 3: "centimeters"}

	fieldsIFD0 = map[uint16]fieldSpec{
		0x010f:         {name: "Make", kind: kindASCII},
		0x0110:         {name: "Model", kind: kindASCII},
		tagOrientation: {name: "Orientation", kind: kindNumber},
		0x011a:         {name: "XResolution", kind: kindRational},
		0x011b:         {name: "YResolution", kind: kindRational},
		0x0128:         {name: "ResolutionUnit", kind: kindEnum, enum: resolutionUnits},
		0x0132:         {name: "DateTime", kind: kindASCII},
		0x8298:         {name: "Copyright", kind: kindASCII},
	}

	fieldsExif = map[uint16]fieldSpec{
		0x829a: {name: "ExposureTime", kind: kindRational, unit: "s"},
		0x829d: {name: "FNumber", kind: kindRational},
		0x8827: {name: "ISOSpeedRatings", kind: kindNumber},
		0x9000: {name: "ExifVersion", kind: kindVersion},
		0x9003: {name: "DateTimeOriginal", kind: kindASCII},
		0x9004: {name: "DateTimeDigitized", kind: kindASCII},
		0x9201: {name: "ShutterSpeedValue", kind: kindAPEX},
		0x9202: {name: "ApertureValue", kind: kindAPEX},
		0x9203: {name: "BrightnessValue", kind: kindAPEX},
		0x9204: {name: "ExposureBiasValue", kind: kindAPEX},
		0x9207: {name: "MeteringMode", kind: kindEnum, fallback: "Other", enum: map[uint16]string{
			0: "Unknown", 1: "Average", 2: "Center-weighted average", 3: "Spot",
			4: "Multi-spot", 5: "Pattern", 6: "Partial",
		}},
		0x9209: {name: "Flash", kind: kindFlash},
		0x920a: {name: "FocalLength", kind: kindRational, unit: "mm"},
		0xa000: {name: "FlashpixVersion", kind: kindVersion},
		0xa001: {name: "ColorSpace", kind: kindEnum, fallback: "Unknown", enum: map[uint16]string{1: "sRGB"}},
		0xa002: {name: "PixelXDimension", kind: kindNumber},
		0xa003: {name: "PixelYDimension", kind: kindNumber},
		0xa20e: {name: "FocalPlaneXResolution", kind: kindRawRational},
		0xa20f: {name: "FocalPlaneYResolution", kind: kindRawRational},
		0xa210: {name: "FocalPlaneResolutionUnit", kind: kindEnum, enum: resolutionUnits},
		0xa401: {name: "CustomRendered", kind: kindEnum, enum: map[uint16]string{0: "Normal", 1: "Custom"}},
		0xa402: {name: "ExposureMode", kind: kindEnum, enum: map[uint16]string{0: "Auto", 1: "Manual", 2: "Auto bracket"}},
		0xa403: {name: "WhiteBalance", kind: kindEnum, enum: map[uint16]string{0: "Auto", 1: "Manual"}},
		0xa404: {name: "DigitalZoomRatio", kind: kindRational},
		0xa405: {name: "FocalLengthIn35mmFilm", kind: kindNumber, unit: "mm", zero: "Unknown"},
		0xa406: {name: "SceneCaptureType", kind: kindEnum, enum: map[uint16]string{
			0: "Standard", 1: "Landscape", 2: "Portrait", 3: "Night scene",
		}},
		0xa40c: {name: "SubjectDistanceRange", kind: kindEnum, enum: map[uint16]string{
			0: "Unknown", 1: "Macro", 2: "Close view", 3: "Distant view",
		}},
	}

	fieldsGPS = map[uint16]fieldSpec{
		tagGPSLatitudeRef:  {name: "GPSLatitudeRef", kind: kindASCII},
		tagGPSLatitude:     {name: "GPSLatitude", kind: kindDMS, refTag: tagGPSLatitudeRef, defaultRef: "N"},
		tagGPSLongitudeRef: {name: "GPSLongitudeRef", kind: kindASCII},
		tagGPSLongitude:    {name: "GPSLongitude", kind: kindDMS, refTag: tagGPSLongitudeRef, defaultRef: "E"},
		0x0006:             {name: "GPSAltitude", kind: kindRational, unit: "m"},
		0x0007:             {name: "GPSTimeStamp", kind: kindTime},
		0x001d:             {name: "GPSDateStamp", kind: kindASCII},
	}
)

// IFD pointers are structural and never reported as fields.
var exifIFDPointers = map[uint16]bool{
	tagExifIFDPointer: true,
	tagGPSIFDPointer:  true,
	0xa005:            true, // InteroperabilityIFD
}
