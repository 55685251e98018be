package phone

// MaskMobile masks keyboard input for a mobile field.
//
// Non-digits are dropped and digits beyond the 11th are discarded, then the
// remaining digits are grouped progressively as the user types:
//
//	"1"           -> "1"
//	"119"         -> "11 9"
//	"1198765"     -> "11 9 8765"
//	"11987654321" -> "11 9 8765 4321"
//
// display goes to the visible field, digits to the form model.
func MaskMobile(raw string) (display, digits string) {
	d := truncate(Digits(raw), MobileLen)
	switch n := len(d); {
	case n <= 2:
		display = d
	case n == 3:
		display = join(d[:2], d[2:])
	case n <= 7:
		display = join(d[:2], d[2:3], d[3:])
	default:
		display = join(d[:2], d[2:3], d[3:7], d[7:])
	}
	return display, d
}

// MaskLandline masks keyboard input for a landline field: at most 10
// digits, grouped as "DD DDDD DDDD".
//
//	"11"         -> "11"
//	"118765"     -> "11 8765"
//	"1187654321" -> "11 8765 4321"
func MaskLandline(raw string) (display, digits string) {
	d := truncate(Digits(raw), LandlineLen)
	switch n := len(d); {
	case n <= 2:
		display = d
	case n <= 6:
		display = join(d[:2], d[2:])
	default:
		display = join(d[:2], d[2:6], d[6:])
	}
	return display, d
}
