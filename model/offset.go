package model

// Chat platforms index message entities in UTF-16 code units, while Go
// strings are UTF-8. These helpers translate between the two schemes.
// Characters outside the Basic Multilingual Plane (emoji, some CJK
// extensions) occupy two UTF-16 code units.

// UTF16Length returns the length of s in UTF-16 code units.
func UTF16Length(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// ByteIndex converts a UTF-16 code-unit offset into a byte index of s.
// Offsets past the end of the string clamp to len(s); an offset landing
// inside a surrogate pair resolves to the start of the following rune.
func ByteIndex(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	count := 0
	for i, r := range s {
		if count >= offset {
			return i
		}
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return len(s)
}
