package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"smartlib/library"
)

var (
	catalogSearch   string
	catalogCategory string
	catalogPopular  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the book catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdContext()
		defer cancel()

		books, err := client.Catalog(ctx)
		if err != nil {
			return err
		}

		if catalogPopular {
			books = library.PopularBooks(books, 5)
		} else {
			books = library.FilterBooks(books, catalogSearch, catalogCategory)
			library.SortBooksByID(books)
		}

		if len(books) == 0 {
			fmt.Println("No books found.")
			return nil
		}

		fmt.Printf("%-6s %-35s %-25s %-15s %s\n", "ID", "Title", "Author", "Category", "Stock")
		fmt.Println(strings.Repeat("-", 95))
		for _, b := range books {
			fmt.Printf("%-6d %-35s %-25s %-15s %d\n",
				b.ID,
				truncateString(b.Title, 35),
				truncateString(b.Author, 25),
				truncateString(b.Category, 15),
				b.Stock)
		}
		return nil
	},
}

var bookCmd = &cobra.Command{
	Use:   "book <book-id>",
	Short: "Show a book's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book ID: %s", args[0])
		}

		ctx, cancel := cmdContext()
		defer cancel()

		books, err := client.Catalog(ctx)
		if err != nil {
			return err
		}
		book := library.NewSnapshot(books)[bookID]
		if book == nil {
			return fmt.Errorf("book %d not found", bookID)
		}

		fmt.Printf("%s\n", book.Title)
		fmt.Printf("Author:   %s\n", book.Author)
		fmt.Printf("Type:     %s\n", book.Kind)
		fmt.Printf("Category: %s\n", book.Category)
		fmt.Printf("Synopsis: %s\n", book.Synopsis)
		if tags := book.TagList(); len(tags) > 0 {
			fmt.Printf("Tags:     %s\n", strings.Join(tags, ", "))
		}
		if book.Stock > 0 {
			fmt.Printf("Stock:    %d available\n", book.Stock)
		} else {
			fmt.Println("Stock:    not available")
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "filter by title, author or category")
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "filter by category")
	catalogCmd.Flags().BoolVar(&catalogPopular, "popular", false, "show the five most borrowed books")
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(bookCmd)
}
