// bitops project bitops.go
package bitops

// Bytes returns the number of bytes needed to hold n bits.
func Bytes(n int) int {
	return (n + 7) >> 3
}

func SetBit(ary []byte, bit uint) []byte {
	ary[bit>>3] |= (1 << (bit & 7))
	return ary
}

func ClrBit(ary []byte, bit uint) []byte {
	ary[bit>>3] &= ^(1 << (bit & 7))
	return ary
}

func GetBit(ary []byte, bit uint) bool {
	return (ary[bit>>3]&(1<<(bit&7)) != 0)
}

// Bit returns the bit as 0 or 1.
func Bit(ary []byte, bit uint) uint8 {
	return (ary[bit>>3] >> (bit & 7)) & 1
}

// PutBit sets the bit when v is non-zero and clears it otherwise.
func PutBit(ary []byte, bit uint, v uint8) []byte {
	if v != 0 {
		return SetBit(ary, bit)
	}
	return ClrBit(ary, bit)
}
