package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hrygo/notekeeper/ai/summary"
)

func newSummarizeCmd() *cobra.Command {
	var (
		serverURL string
		file      string
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize notes through a running notekeeper server",
		Long: `Summarize posts notes to the server's /api/summarize endpoint and prints the summary.
Without --file the notes are fetched from the server's /api/notes first.
The file holds a summarize request body: {"notes": [{"title": "...", "content": "..."}]}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := summary.NewClient(serverURL, nil)
			text, err := runSummarize(cmd.Context(), client, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:28082", "base URL of the notekeeper server")
	cmd.Flags().StringVar(&file, "file", "", `JSON file with notes to summarize, "-" reads stdin`)
	return cmd
}

func runSummarize(ctx context.Context, client *summary.Client, file string, stdin io.Reader) (string, error) {
	req := &summary.SummarizeRequest{}
	switch file {
	case "":
		notes, err := client.FetchNotes(ctx)
		if err != nil {
			return "", err
		}
		req.Notes = notes
	default:
		data, err := readNotesFile(file, stdin)
		if err != nil {
			return "", err
		}
		if err := json.Unmarshal(data, req); err != nil {
			return "", errors.Wrapf(err, "failed to parse %s", file)
		}
	}

	resp, err := client.Summarize(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Summary, nil
}

func readNotesFile(file string, stdin io.Reader) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(file)
	return data, errors.Wrapf(err, "failed to read %s", file)
}
