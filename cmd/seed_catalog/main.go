package main

import (
	"fmt"
	"os"
	"strings"

	"book-catalog/catalog"

	"go.uber.org/zap"
)

// seeds is the built-in starter set: title, author, year.
var seeds = []catalog.SeedRecord{
	{Title: "1984", Author: "George Orwell", Year: 1949},
	{Title: "Animal Farm", Author: "George Orwell", Year: 1945},
	{Title: "The Diary of a Young Girl", Author: "Anne Frank", Year: 1947},
	{Title: "The Art of War", Author: "Sun Tzu", Year: -500},
	{Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", Year: 1954},
	{Title: "The Two Towers", Author: "J.R.R. Tolkien", Year: 1954},
	{Title: "The Return of the King", Author: "J.R.R. Tolkien", Year: 1955},
	{Title: "Romeo and Juliet", Author: "William Shakespeare", Year: 1597},
	{Title: "The Three Musketeers", Author: "Alexandre Dumas", Year: 1844},
	{Title: "Dune", Author: "Frank Herbert", Year: 1965},
	{Title: "Foundation", Author: "Isaac Asimov", Year: 1951},
}

func main() {
	path := "library.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := catalog.NewFileStore(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
		os.Exit(1)
	}
	mgr := catalog.NewManager(store, logger)
	defer mgr.Close()

	fmt.Printf("Seeding %s with %d books...\n", path, len(seeds))

	added, err := mgr.ImportRecords(seeds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error after %d book(s): %v\n", added, err)
		os.Exit(1)
	}

	fmt.Printf("\nSeeding complete! Added %d book(s).\n", added)

	records, err := mgr.All()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%-5s %-35s %-25s %-6s %-12s\n", "ID", "Title", "Author", "Year", "Status")
	fmt.Println(strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Println(catalog.FormatRecord(r))
	}
}
