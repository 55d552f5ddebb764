package nodes

import (
	"fmt"
	"math"
)

// Entropy computes Shannon entropy in bits over the byte-value frequency
// distribution of data, formatted with three decimals. All-identical bytes
// yield "0.000"; a uniform distribution over all 256 values yields "8.000".
func Entropy(data []byte) string {
	if len(data) == 0 {
		return "0.000"
	}

	var freq [256]int
	for _, b := range data {
		freq[b]++
	}

	entropy := 0.0
	total := float64(len(data))
	for _, n := range freq {
		if n == 0 {
			continue
		}
		p := float64(n) / total
		entropy -= p * math.Log2(p)
	}

	return fmt.Sprintf("%.3f", entropy)
}
