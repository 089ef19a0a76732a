// main.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// Command-line harness for exercising the binpack dictionary: looks
// up a word (or a bin_id, or a lemma's inflection forms) and prints
// the matching entries.

package main

import (
	"flag"
	"fmt"
	"os"

	binpack "github.com/mideind/BinPackage"
)

func main() {
	word := flag.String("w", "", "Word form to look up")
	lemma := flag.String("lemma", "", "Lemma to look up inflection forms for")
	cat := flag.String("cat", "", "Restrict to this word class (no, lo, so, ...)")
	binId := flag.Int("id", 0, "bin_id to look up (use with -id-lookup)")
	idLookup := flag.Bool("id-lookup", false, "Look up by bin_id instead of word form")
	caseArg := flag.String("case", "", "Cast -w to this case (NF, ÞF, ÞGF, EF)")
	ksnid := flag.Bool("ksnid", false, "Print full ksnid records instead of six-field entries")
	flag.Parse()

	env := binpack.LoadEnv()
	dict, closeAll, err := env.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "binpack: %v\n", err)
		os.Exit(1)
	}
	defer closeAll()

	switch {
	case *idLookup:
		for _, k := range dict.LookupKsnidByID(*binId) {
			fmt.Println(k)
		}
	case *lemma != "":
		for _, e := range dict.LookupForms(*lemma, *cat, *caseArg) {
			fmt.Println(e)
		}
	case *caseArg != "" && *word != "":
		fmt.Println(dict.CastToCase(*word, *caseArg, nil))
	case *word != "":
		if *ksnid {
			for _, k := range dict.LookupKsnid(*word) {
				fmt.Println(k)
			}
		} else {
			res := dict.Lookup(*word)
			if len(res.Entries) == 0 {
				fmt.Printf("No entries found for %q\n", *word)
				os.Exit(1)
			}
			for _, e := range res.Entries {
				fmt.Println(e)
			}
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
