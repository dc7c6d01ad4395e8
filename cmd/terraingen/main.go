// terraingen generates diamond-square heightmaps and exports them as OBJ meshes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "terraingen",
		Short:         "Diamond-square terrain generator",
		Long:          `terraingen synthesizes a fractal heightmap with the diamond-square algorithm and writes it as a Wavefront OBJ mesh with optional normals and texture coordinates.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newConfigCmd())
	return root
}
