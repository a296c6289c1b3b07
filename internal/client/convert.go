package client

import (
	"fmt"
	"math/big"
	"strings"
)

var weiPerEth = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// WeiToEth converts a decimal wei string to ETH. Empty means zero.
func WeiToEth(wei string) (float64, error) {
	wei = strings.TrimSpace(wei)
	if wei == "" {
		return 0, nil
	}
	n, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return 0, fmt.Errorf("invalid wei amount %q", wei)
	}
	if n.Sign() < 0 {
		return 0, fmt.Errorf("negative wei amount %q", wei)
	}
	eth, _ := new(big.Rat).SetFrac(n, weiPerEth).Float64()
	return eth, nil
}

// EthToWei converts ETH to wei, truncating below one wei.
func EthToWei(eth float64) (*big.Int, error) {
	if eth < 0 {
		return nil, fmt.Errorf("negative eth amount %v", eth)
	}
	r := new(big.Rat)
	if r.SetFloat64(eth) == nil {
		return nil, fmt.Errorf("eth amount %v is not finite", eth)
	}
	r.Mul(r, new(big.Rat).SetInt(weiPerEth))
	return new(big.Int).Quo(r.Num(), r.Denom()), nil
}
