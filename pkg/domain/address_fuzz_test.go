package domain

import "testing"

// FuzzParseAddress checks that parsing never panics and that every accepted
// input re-encodes to an address that parses to the same value.
func FuzzParseAddress(f *testing.F) {
	f.Add("")
	f.Add("11111111111111111111111111111111")
	f.Add("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	f.Add("0OIl")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		addr, err := ParseAddress(input)
		if err != nil {
			return
		}
		again, err := ParseAddress(addr.String())
		if err != nil {
			t.Fatalf("accepted address failed round-trip: %v", err)
		}
		if again != addr {
			t.Fatal("round-trip changed address value")
		}
	})
}
