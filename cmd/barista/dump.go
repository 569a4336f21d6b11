package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/barista/c2pb"
)

// DumpHandler renders a serialized net in text proto form, or JSON with
// --json.
func DumpHandler(cmd *cobra.Command, args []string) error {
	net, err := readNetDef(args[0])
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out, err := json.MarshalIndent(net, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", args[0], err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Print(c2pb.FormatNetDef(net))
	return nil
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump NET_FILE",
		Short: "Render a serialized net as text",
		Args:  cobra.ExactArgs(1),
		RunE:  DumpHandler,
	}
	cmd.Flags().Bool("json", false, "Render as JSON instead of text proto")
	return cmd
}
