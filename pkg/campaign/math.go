package campaign

// Percent returns floor(numerator * 10^precision / denominator), expressing
// a ratio without fractional arithmetic. Precision 2 yields a value directly
// comparable against whole percentages (50 means 50%).
func Percent(numerator, denominator int64, precision uint) (int64, error) {
	if denominator == 0 {
		return 0, ErrDivisionByZero
	}

	scale := int64(1)
	for i := uint(0); i < precision; i++ {
		scale *= 10
	}

	return numerator * scale / denominator, nil
}
