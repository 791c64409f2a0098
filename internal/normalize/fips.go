package normalize

import "strings"

// StripLeadingZeros removes every leading '0' from code. An all-zero code
// becomes the empty string.
func StripLeadingZeros(code string) string {
	return strings.TrimLeft(code, "0")
}

// PadFIPS left-pads a FIPS code with zeros to width digits. Blank codes stay
// blank; longer codes are returned unchanged.
func PadFIPS(code string, width int) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) >= width {
		return code
	}
	return strings.Repeat("0", width-len(code)) + code
}
