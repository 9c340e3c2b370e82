package ProbeTable

// IsPrime reports whether n is prime, by trial division over odd candidates.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n&1 == 0 {
		return false
	}
	for i := 3; i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// NextPrime returns the smallest prime strictly greater than n.
func NextPrime(n int) int {
	for n++; !IsPrime(n); n++ {
	}
	return n
}

// primeAtLeast returns the smallest prime >= n, and 2 for anything below 2.
func primeAtLeast(n int) int {
	if IsPrime(n) {
		return n
	}
	if n < 2 {
		return 2
	}
	return NextPrime(n)
}
