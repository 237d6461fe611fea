package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/s0up4200/mailgallery/contextio"
)

var (
	callAccounts    []string
	callParams      []string
	callShowHeaders bool
)

// callCmd invokes any catalogued endpoint
var callCmd = &cobra.Command{
	Use:   "call <endpoint>",
	Short: "Invoke a Context.IO endpoint and print the response",
	Long: `Invoke any endpoint of the catalog (see the endpoints command).

Parameters are passed as --param key=value and filtered against the
endpoint's whitelist before signing. Repeating a key sends it several
times. Passing --account more than once runs a batch call that stops at the
first failing account.`,
	Example: `  mailgallery call allfiles --account me@example.com --param limit=5
  mailgallery call search --account a@x.com --account b@x.com --param subject=invoice
  mailgallery call imap/discover --param email=me@example.com --headers`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runCall,
}

func init() {
	callCmd.Flags().StringSliceVarP(&callAccounts, "account", "a", nil, "account identifier (repeat for a batch call)")
	callCmd.Flags().StringArrayVarP(&callParams, "param", "p", nil, "request parameter as key=value")
	callCmd.Flags().BoolVar(&callShowHeaders, "headers", false, "capture and print request and response headers")
}

func runCall(cmd *cobra.Command, args []string) error {
	ep := contextio.Endpoint(args[0])
	if _, ok := contextio.Lookup(ep); !ok {
		return fmt.Errorf("%w: %s (run 'mailgallery endpoints' for the list)", contextio.ErrUnknownEndpoint, ep)
	}

	params, err := parseParams(callParams)
	if err != nil {
		return err
	}

	if callShowHeaders {
		client.SaveHeaders(true)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if ep == contextio.DownloadFile {
		account, err := singleAccount(callAccounts)
		if err != nil {
			return err
		}
		if out == os.Stdout && isatty.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("refusing to write file content to a terminal: redirect the output")
		}
		_, err = client.Download(ctx, account, params, out)
		return err
	}

	if len(callAccounts) > 1 {
		results, err := client.Batch(ctx, ep, callAccounts, params)
		if err != nil {
			return err
		}
		for _, account := range callAccounts {
			fmt.Fprintf(out, "== %s\n", account)
			if err := printResponse(out, results[account]); err != nil {
				return err
			}
		}
		return nil
	}

	account, err := singleAccount(callAccounts)
	if err != nil {
		return err
	}

	resp, callErr := client.Call(ctx, ep, account, params)
	if resp != nil {
		if err := printResponse(out, resp); err != nil {
			return err
		}
	}
	return callErr
}

func singleAccount(accounts []string) (string, error) {
	switch len(accounts) {
	case 0:
		if cfg != nil {
			return cfg.Gallery.Account, nil
		}
		return "", nil
	case 1:
		return accounts[0], nil
	default:
		return "", fmt.Errorf("this call accepts a single --account")
	}
}

// parseParams turns key=value flags into request parameters. Repeated keys
// become a multi-valued parameter.
func parseParams(raw []string) (contextio.Params, error) {
	var params contextio.Params
	index := make(map[string]int)

	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", kv)
		}

		i, seen := index[key]
		if !seen {
			index[key] = len(params)
			params = append(params, contextio.Param{Key: key, Value: value})
			continue
		}

		switch existing := params[i].Value.(type) {
		case string:
			params[i].Value = []string{existing, value}
		case []string:
			params[i].Value = append(existing, value)
		}
	}

	return params, nil
}

func printResponse(w io.Writer, resp *contextio.Response) error {
	if callShowHeaders {
		printHeaders(w, "Request headers", resp.RequestHeaders(), contextio.RequestLineKey)
		printHeaders(w, "Response headers", resp.ResponseHeaders(), contextio.StatusLineKey)
	}

	if resp.Decoded() == nil {
		_, err := w.Write(resp.RawBody())
		fmt.Fprintln(w)
		return err
	}

	data, err := json.MarshalIndent(resp.Decoded(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printHeaders(w io.Writer, title string, headers contextio.HeaderMap, firstLineKey string) {
	if headers == nil {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	if line := headers.Get(firstLineKey); line != "" {
		fmt.Fprintf(w, "  %s\n", line)
	}
	for _, name := range slices.Sorted(maps.Keys(headers)) {
		if name == firstLineKey {
			continue
		}
		for _, v := range headers.Values(name) {
			fmt.Fprintf(w, "  %s: %s\n", name, v)
		}
	}
	fmt.Fprintln(w)
}
