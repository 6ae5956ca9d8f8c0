package nwalign_test

import (
	"fmt"
	"strings"

	"github.com/aria-lang/nwalign/pkg/nwalign"
)

func ExampleAlign() {
	res, err := nwalign.Align("", "AGT", nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Best.AlignedSeq1)
	fmt.Println(res.Best.AlignedSeq2)
	fmt.Println(res.Score)
	// Output:
	// ___
	// AGT
	// -24
}

func ExampleParsePair() {
	s1, s2, err := nwalign.ParsePair(strings.NewReader(">first\nGATTACA\n>second\nGCATGCT\n"))
	if err != nil {
		panic(err)
	}
	fmt.Println(s1.ID, s1.Bases)
	fmt.Println(s2.ID, s2.Bases)
	// Output:
	// first GATTACA
	// second GCATGCT
}
