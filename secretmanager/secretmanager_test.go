package secretmanager

import "testing"

func TestBIP44PathInternal(t *testing.T) {
	external := BIP44Path{CoinType: 4218, Account: 0, Change: 0, AddressIndex: 3}
	if external.Internal() {
		t.Fatalf("Change=0 path reported Internal()")
	}

	internal := BIP44Path{CoinType: 4218, Account: 0, Change: 1, AddressIndex: 3}
	if !internal.Internal() {
		t.Fatalf("Change=1 path did not report Internal()")
	}
}
