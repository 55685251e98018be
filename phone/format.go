package phone

// FormatMobile renders stored mobile digits for display ("DD D DDDD DDDD").
// Anything that does not reduce to exactly 11 digits is returned unchanged.
func FormatMobile(s string) string {
	d := Digits(s)
	if len(d) != MobileLen {
		return s
	}
	return join(d[:2], d[2:3], d[3:7], d[7:])
}

// FormatLandline renders stored landline digits for display ("DD DDDD DDDD").
// Anything that does not reduce to exactly 10 digits is returned unchanged.
func FormatLandline(s string) string {
	d := Digits(s)
	if len(d) != LandlineLen {
		return s
	}
	return join(d[:2], d[2:6], d[6:])
}
