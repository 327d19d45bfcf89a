package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stac-index/internal/infra/fetcher"
	"stac-index/internal/usecase/stac"
)

func addFetchFlags(cmd *cobra.Command, defaults fetcher.Config) {
	cmd.Flags().Duration("timeout", defaults.Timeout, "Upstream request timeout")
	cmd.Flags().Int64("max-body-size", defaults.MaxBodySize, "Maximum upstream response size in bytes")
	cmd.Flags().Bool("allow-private", false, "Allow fetching loopback and private network addresses")
}

func fetcherFromFlags(cmd *cobra.Command, cfg fetcher.Config) (*fetcher.JSONFetcher, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxBody, _ := cmd.Flags().GetInt64("max-body-size")
	allowPrivate, _ := cmd.Flags().GetBool("allow-private")

	cfg.Timeout = timeout
	cfg.MaxBodySize = maxBody
	cfg.DenyPrivateIPs = !allowPrivate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return fetcher.New(cfg), nil
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <url>",
		Short: "Check that a URL serves a STAC catalog",
		Long: `Fetch the URL with the limits used for submissions and report whether the
response is a STAC catalog (an object with an id, a description and links).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fetcherFromFlags(cmd, fetcher.DefaultConfig())
			if err != nil {
				return err
			}
			start := time.Now()
			if _, err := stac.NewVerifier(f).VerifyURL(cmd.Context(), args[0], true); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is a STAC catalog (%s)\n",
				args[0], time.Since(start).Round(time.Millisecond))
			return err
		},
	}
	addFetchFlags(cmd, fetcher.DefaultConfig())
	return cmd
}

func newProxyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy <url>",
		Short: "Print a STAC document with its links rewritten through the proxy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fetcherFromFlags(cmd, fetcher.ProxyConfig())
			if err != nil {
				return err
			}
			publicURL, _ := cmd.Flags().GetString("public-url")
			body, err := stac.NewProxy(f, publicURL).Do(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return err
		},
	}
	addFetchFlags(cmd, fetcher.ProxyConfig())
	cmd.Flags().String("public-url", "http://localhost:9999", "Public base URL the rewritten links point to")
	return cmd
}
