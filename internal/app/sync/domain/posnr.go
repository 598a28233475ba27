package domain

import "fmt"

// Posnr is a SAP position number: a 6-digit zero-padded identifier that
// disambiguates which quote line item a price lookup refers to when the same
// material appears more than once. The source system requires it verbatim,
// so the value is kept as its canonical string form.
type Posnr struct {
	value string
}

// NewPosnr validates and wraps a raw position number string.
func NewPosnr(value string) (Posnr, error) {
	if value == "" {
		return Posnr{}, ErrPosnrEmpty
	}
	if len(value) != 6 {
		return Posnr{}, fmt.Errorf("%w: got %q (%d characters)", ErrPosnrLength, value, len(value))
	}
	for _, c := range value {
		if c < '0' || c > '9' {
			return Posnr{}, fmt.Errorf("%w: got %q", ErrPosnrNotDigits, value)
		}
	}
	return Posnr{value: value}, nil
}

// PosnrFromInt builds a zero-padded Posnr from an integer line number.
func PosnrFromInt(n int) (Posnr, error) {
	if n < 0 || n > 999999 {
		return Posnr{}, fmt.Errorf("%w: got %d", ErrPosnrRange, n)
	}
	return Posnr{value: fmt.Sprintf("%06d", n)}, nil
}

// Value returns the canonical 6-digit string.
func (p Posnr) Value() string { return p.value }

// IsZero reports whether p is the zero Posnr (unset).
func (p Posnr) IsZero() bool { return p.value == "" }

func (p Posnr) String() string { return p.value }
