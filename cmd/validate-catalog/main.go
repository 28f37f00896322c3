package main

import (
	"fmt"
	"os"

	"github.com/marcelsud/bookstore/seed"
)

/* validate-catalog - standalone CLI tool to validate a catalog.yaml
 * Usage: go run cmd/validate-catalog/main.go [catalog.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	catalogFile := "catalog.yaml"
	if len(os.Args) > 1 {
		catalogFile = os.Args[1]
	}

	fmt.Printf("Validating catalog file: %s\n", catalogFile)

	loader := seed.NewLoader()
	if err := loader.Load(catalogFile); err != nil {
		fmt.Fprintf(os.Stderr, "VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	books := loader.List()
	fmt.Printf("VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d book(s):\n", len(books))

	for i, b := range books {
		fmt.Printf("\n%d. %s\n", i+1, b.Title)
		fmt.Printf("   Author: %s\n", b.Author)
		fmt.Printf("   Pages:  %d\n", b.Pages)
		fmt.Printf("   Rating: %.1f\n", b.Rating)
		fmt.Printf("   Genre:  %s\n", b.Genre)
		if b.Review != "" {
			fmt.Printf("   Review: %s\n", b.Review)
		}
	}

	fmt.Printf("\nAll books are valid!\n")
}
