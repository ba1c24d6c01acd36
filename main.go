package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"book-catalog/catalog"
	"book-catalog/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgFile     string
	catalogPath string
	backend     string
	dbPath      string
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd runs the interactive menu shell when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "book-catalog",
	Short: "Single-user book catalog manager",
	Long: `book-catalog manages a catalog of book records persisted to a local file.

Run without arguments to start the interactive menu. Subcommands offer the
same operations for scripting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Flags win over config file and environment.
		if cmd.Flags().Changed("file") {
			cfg.CatalogPath = catalogPath
		}
		if cmd.Flags().Changed("backend") {
			cfg.Backend = backend
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("db") {
			cfg.DatabasePath = dbPath
		}

		zcfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(runShell)
	},
}

var addCmd = &cobra.Command{
	Use:   "add [title] [author] [year]",
	Short: "Add a book and print its id",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("year must be an integer: %q", args[2])
		}
		return withManager(func(mgr *catalog.Manager) error {
			id, err := mgr.Add(args[0], args[1], year)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(mgr *catalog.Manager) error {
			records, err := mgr.All()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("Catalog is empty.")
				return nil
			}
			printRecords(records)
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search books by title, author, or year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(mgr *catalog.Manager) error {
			records, err := mgr.Search(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No books found.")
				return nil
			}
			printRecords(records)
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a book by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id must be an integer: %q", args[0])
		}
		return withManager(func(mgr *catalog.Manager) error {
			removed, err := mgr.Remove(id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("book %d not found", id)
			}
			fmt.Printf("Removed book %d\n", id)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [id] [available|checked_out]",
	Short: "Change a book's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id must be an integer: %q", args[0])
		}
		return withManager(func(mgr *catalog.Manager) error {
			changed, err := mgr.SetStatus(id, args[1])
			if err != nil {
				return err
			}
			if !changed {
				return fmt.Errorf("could not change status: unknown id %d or status %q", id, args[1])
			}
			fmt.Printf("Status of book %d set to %s\n", id, args[1])
			return nil
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate [file|sqlite]",
	Short: "Copy the catalog to the other backend",
	Long: `Copies every record from the configured backend to the named one,
preserving ids, statuses, and order. The destination's prior contents are
replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == cfg.Backend {
			return fmt.Errorf("catalog already uses the %s backend", target)
		}
		dst, err := openStoreFor(target)
		if err != nil {
			return err
		}
		defer dst.Close()

		return withManager(func(mgr *catalog.Manager) error {
			n, err := mgr.CopyTo(dst)
			if err != nil {
				return err
			}
			fmt.Printf("Copied %d record(s) to the %s backend\n", n, target)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "book-catalog.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "file", "library.json", "catalog file (file backend)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", config.BackendFile, "storage backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "library.db", "database file (sqlite backend)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(addCmd, listCmd, searchCmd, removeCmd, statusCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStoreFor builds the store for the named backend using the effective
// configuration.
func openStoreFor(name string) (catalog.Store, error) {
	switch name {
	case config.BackendFile:
		return catalog.NewFileStore(cfg.CatalogPath, logger)
	case config.BackendSQLite:
		return catalog.NewSQLStore(cfg.DatabasePath, logger)
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

// withManager opens the configured store, runs fn, and closes the store on
// all paths.
func withManager(fn func(*catalog.Manager) error) error {
	store, err := openStoreFor(cfg.Backend)
	if err != nil {
		return err
	}
	mgr := catalog.NewManager(store, logger)
	defer mgr.Close()
	return fn(mgr)
}

// ---------------------------------------------------------------------------
// Interactive shell
// ---------------------------------------------------------------------------

func runShell(mgr *catalog.Manager) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\n--- Book Catalog ---")
		fmt.Println("1. Add book")
		fmt.Println("2. Remove book")
		fmt.Println("3. Search books")
		fmt.Println("4. List all books")
		fmt.Println("5. Change status")
		fmt.Println("6. Exit")
		fmt.Print("Choose an action (1-6): ")

		if !scanner.Scan() {
			return nil
		}
		choice := strings.TrimSpace(scanner.Text())

		switch choice {
		case "1":
			handleAdd(scanner, mgr)
		case "2":
			handleRemove(scanner, mgr)
		case "3":
			handleSearch(scanner, mgr)
		case "4":
			handleList(mgr)
		case "5":
			handleStatus(scanner, mgr)
		case "6":
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println("Invalid choice. Try again.")
		}
	}
}

// promptInt reads one line and parses it as an integer. A parse failure is
// reported to the user and returned as ok=false; the shell loop continues.
func promptInt(sc *bufio.Scanner, prompt string) (int64, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return 0, false
	}
	text := strings.TrimSpace(sc.Text())
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Println("Invalid input. Try again.")
		return 0, false
	}
	return n, true
}

func promptLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func handleAdd(sc *bufio.Scanner, mgr *catalog.Manager) {
	title, ok := promptLine(sc, "Title: ")
	if !ok {
		return
	}
	author, ok := promptLine(sc, "Author: ")
	if !ok {
		return
	}
	year, ok := promptInt(sc, "Year: ")
	if !ok {
		return
	}

	id, err := mgr.Add(title, author, int(year))
	if err != nil {
		fmt.Printf("Error adding book: %v\n", err)
		return
	}
	fmt.Printf("Book added with ID: %d\n", id)
}

func handleRemove(sc *bufio.Scanner, mgr *catalog.Manager) {
	id, ok := promptInt(sc, "Book ID to remove: ")
	if !ok {
		return
	}

	removed, err := mgr.Remove(id)
	if err != nil {
		fmt.Printf("Error removing book: %v\n", err)
		return
	}
	if removed {
		fmt.Println("Book removed.")
	} else {
		fmt.Println("Book not found.")
	}
}

func handleSearch(sc *bufio.Scanner, mgr *catalog.Manager) {
	query, ok := promptLine(sc, "Search query: ")
	if !ok {
		return
	}

	records, err := mgr.Search(query)
	if err != nil {
		fmt.Printf("Error searching: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Println("No books found.")
		return
	}
	printRecords(records)
}

func handleList(mgr *catalog.Manager) {
	records, err := mgr.All()
	if err != nil {
		fmt.Printf("Error listing books: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Println("Catalog is empty.")
		return
	}
	printRecords(records)
}

func handleStatus(sc *bufio.Scanner, mgr *catalog.Manager) {
	id, ok := promptInt(sc, "Book ID: ")
	if !ok {
		return
	}
	status, ok := promptLine(sc, "New status (available/checked_out): ")
	if !ok {
		return
	}

	changed, err := mgr.SetStatus(id, status)
	if err != nil {
		fmt.Printf("Error changing status: %v\n", err)
		return
	}
	if changed {
		fmt.Println("Status updated.")
	} else {
		fmt.Println("Could not change status: unknown id or status.")
	}
}

func printRecords(records []catalog.Record) {
	fmt.Printf("%-5s %-35s %-25s %-6s %-12s\n", "ID", "Title", "Author", "Year", "Status")
	fmt.Println(strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Println(catalog.FormatRecord(r))
	}
}
