package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adeilh/docserve/httpx"
)

var (
	fetchAddr    string
	fetchHead    bool
	fetchTimeout time.Duration
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Fetch a document from a running instance",
	Long: `Fetch requests /<id> from a running docserve and prints the status line,
the entity tag and the body. The id is sent as given, so escape it the way the
service expects to see it.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchAddr, "addr", "http://127.0.0.1:3000", "Base URL of the running service")
	fetchCmd.Flags().BoolVar(&fetchHead, "head", false, "Send HEAD instead of GET")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 10*time.Second, "Request timeout")
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := httpx.NewClient(
		httpx.WithBaseURL(fetchAddr),
		httpx.WithClientTimeout(fetchTimeout),
	)
	path := "/" + strings.TrimPrefix(args[0], "/")

	method := http.MethodGet
	if fetchHead {
		method = http.MethodHead
	}
	resp, err := client.Do(cmd.Context(), method, path)
	if resp == nil || resp.StatusCode() == 0 {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", resp.Proto(), resp.Status())
	if etag := resp.Header().Get("ETag"); etag != "" {
		fmt.Fprintf(out, "ETag: %s\n", etag)
	}
	if body := resp.Body(); len(body) > 0 {
		fmt.Fprintf(out, "\n%s\n", body)
	}
	return err
}
