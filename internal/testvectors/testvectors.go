// Package testvectors loads the named seed scenarios from spec.md §8 out of
// a YAML fixture so package tests share one source of truth for these
// numbers instead of repeating hand-copied literals.
package testvectors

import (
	"os"

	"gopkg.in/yaml.v3"
)

// RankSeed10110000 is the B = "10110000" (n=7) scenario.
type RankSeed10110000 struct {
	Bits      string `yaml:"bits"`
	N         int    `yaml:"n"`
	Count     int    `yaml:"count"`
	RankAt4   uint64 `yaml:"rank_at_4"`
	SelectOf2 uint64 `yaml:"select_of_2"`
	LastOne   int64  `yaml:"last_one"`
}

// AlternatingWord is the B = 0xAAAA...AAAA (n=64) scenario.
type AlternatingWord struct {
	Hex string `yaml:"hex"`
	N   int    `yaml:"n"`
}

// EliasFanoExample is the Elias-Fano of [0, 48, 128] scenario.
type EliasFanoExample struct {
	Values   []uint64 `yaml:"values"`
	Universe uint64   `yaml:"universe"`
	M        uint64   `yaml:"m"`
	L        uint     `yaml:"l"`
	CoreBits uint64   `yaml:"core_bits"`
}

// BalancedNestedTriple is the "((()())())" find_close scenario.
type BalancedNestedTriple struct {
	Parens    string           `yaml:"parens"`
	FindClose map[uint64]uint64 `yaml:"find_close"`
}

// FindNearCloseExample is the "(()(()))" find_near_close scenario.
type FindNearCloseExample struct {
	Parens string `yaml:"parens"`
	Expect int    `yaml:"expect"`
}

// Vectors holds every named seed scenario in the fixture.
type Vectors struct {
	RankSeed10110000     RankSeed10110000     `yaml:"rank_seed_10110000"`
	AlternatingWord      AlternatingWord      `yaml:"alternating_word"`
	EliasFanoExample     EliasFanoExample     `yaml:"elias_fano_example"`
	BalancedNestedTriple BalancedNestedTriple `yaml:"balanced_nested_triple"`
	FindNearCloseExample FindNearCloseExample `yaml:"find_near_close_example"`
}

// Load reads and parses the vectors fixture at path.
func Load(path string) (*Vectors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v Vectors
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
