// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package escape implements display quoting for the raw text of strings.
package escape

import (
	"unicode"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// NeedsQuote reports whether src must be quoted to be displayed unambiguously
// on a single line: that is, if it is empty, has leading or trailing space, or
// contains a control or invalid character.
func NeedsQuote(src mem.RO) bool {
	if src.Len() == 0 {
		return true
	}
	first, _ := mem.DecodeRune(src)
	last, _ := mem.DecodeLastRune(src)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return true
	}
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		if r < ' ' || r == utf8.RuneError || r == '\u2028' || r == '\u2029' || r == 0x7f {
			return true
		}
		src = src.SliceFrom(n)
	}
	return false
}

// Quote returns src enclosed in double quotation marks, with control
// characters escaped. Other text, including backslashes, is copied as-is: src
// is the raw text of a string, so any escape sequences it contains are
// already in their quoted form.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	putByte('"')
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putByte('\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == 0x7f {
				buf = append(buf, `\u007f`...)
			} else {
				putByte(byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case utf8.RuneError:
			if n == 1 {
				// An invalid byte, show it as such.
				b := src.At(0)
				putByte('\\', 'x', hexDigit[int(b>>4)], hexDigit[int(b&15)])
			} else {
				buf = append(buf, `\ufffd`...)
			}
		case '\u2028': // line separator
			buf = append(buf, `\u2028`...)
		case '\u2029': // paragraph separator
			buf = append(buf, `\u2029`...)
		default:
			var rbuf [utf8.UTFMax]byte
			m := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:m]...)
		}
		src = src.SliceFrom(n)
	}
	putByte('"')
	return buf
}

// Display returns src unchanged if it can be displayed without quotation,
// otherwise it returns Quote(src).
func Display(src mem.RO) []byte {
	if NeedsQuote(src) {
		return Quote(src)
	}
	return mem.Append(nil, src)
}
