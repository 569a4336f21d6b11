package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/barista/c2pb"
)

// SummaryHandler prints an operator table for a serialized net.
func SummaryHandler(cmd *cobra.Command, args []string) error {
	net, err := readNetDef(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("net: %s\n", net.Name)
	if net.Type != "" {
		fmt.Printf("type: %s\n", net.Type)
	}
	fmt.Println()

	var data [][]string
	types := make(map[string]int)
	for _, op := range net.Op {
		types[op.Type]++
		data = append(data, []string{
			op.Type,
			op.Name,
			strings.Join(op.Input, ","),
			strings.Join(op.Output, ","),
			op.Engine,
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"TYPE", "NAME", "INPUTS", "OUTPUTS", "ENGINE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	fmt.Printf("\n%d operators, %d distinct types\n", len(net.Op), len(types))

	initPath, _ := cmd.Flags().GetString("params")
	if initPath == "" {
		return nil
	}
	return crossReferenceParams(net, initPath)
}

// crossReferenceParams reports which external inputs of the net the given
// init net fills, the check that catches a predictor shipped with the wrong
// parameter file.
func crossReferenceParams(net *c2pb.NetDef, initPath string) error {
	initNet, err := readNetDef(initPath)
	if err != nil {
		return err
	}

	filled := make(map[string]bool)
	for _, op := range initNet.Op {
		for _, out := range op.Output {
			filled[out] = true
		}
	}

	var missing []string
	var found int
	for _, in := range net.ExternalInput {
		if filled[in] {
			found++
		} else {
			missing = append(missing, in)
		}
	}

	fmt.Printf("params: %d of %d external inputs filled by %s\n",
		found, len(net.ExternalInput), initNet.Name)
	if len(missing) > 0 {
		fmt.Printf("unfilled: %s\n", strings.Join(missing, ", "))
	}
	return nil
}

func readNetDef(path string) (*c2pb.NetDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	net, err := c2pb.UnmarshalNetDef(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return net, nil
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary NET_FILE",
		Short: "Print an operator table for a serialized net",
		Args:  cobra.ExactArgs(1),
		RunE:  SummaryHandler,
	}
	cmd.Flags().String("params", "", "Cross-reference external inputs against an init net file")
	return cmd
}
