package rank

import "github.com/xflash-panda/succinct/pkg/succinct"

var (
	_ succinct.Rank = (*Rank9)(nil)
	_ succinct.Rank = (*Rank11)(nil)
	_ succinct.Rank = (*Rank16)(nil)
)
