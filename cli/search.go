// ABOUTME: One-shot search against the backend from the command line
// ABOUTME: Prints the assistant summary and the matching entities
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harperreed/nexus/search"
)

// SearchCommand sends one query to the search backend at baseURL.
func SearchCommand(stdout io.Writer, baseURL string, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	url := fs.String("url", baseURL, "Search backend base URL")
	timeout := fs.Duration("timeout", 30*time.Second, "Request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		return fmt.Errorf("query required")
	}
	if *url == "" {
		return fmt.Errorf("no search backend configured (set --url or NEXUS_SEARCH_URL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := search.NewClient(*url).Search(ctx, query)
	if err != nil {
		return fmt.Errorf("%s", search.ErrorMessage(err))
	}

	fmt.Fprintln(stdout, resp.Summary)
	if len(resp.Results) == 0 {
		return nil
	}

	fmt.Fprintf(stdout, "\nFound %d entities:\n\n", len(resp.Results))
	fmt.Fprintf(stdout, "%-6s %-9s %-20s %s\n", "ID", "TYPE", "NAME", "DETAILS")
	fmt.Fprintln(stdout, strings.Repeat("-", 70))
	for _, e := range resp.Results {
		fmt.Fprintf(stdout, "%-6d %-9s %-20s %s\n", e.ID, e.Type, e.Name, e.Subtitle())
	}
	return nil
}
