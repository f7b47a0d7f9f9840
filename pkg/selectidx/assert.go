package selectidx

import "github.com/xflash-panda/succinct/pkg/succinct"

var (
	_ succinct.Select     = (*SimpleSelect)(nil)
	_ succinct.Select     = (*Select9)(nil)
	_ succinct.Select     = (*HintedBsearchSelect)(nil)
	_ succinct.SelectZero = (*SimpleSelectZero)(nil)
)
