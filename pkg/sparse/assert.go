package sparse

import "github.com/xflash-panda/succinct/pkg/succinct"

var (
	_ succinct.Select = (*SparseSelect)(nil)
	_ succinct.Rank   = (*SparseRank)(nil)
)
