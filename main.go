package main

import (
	"fmt"
	"os"

	"apple2emu/apple2"

	"github.com/spf13/cobra"
)

func main() {
	var (
		width, height int
		disk1, disk2  string
		disasm        bool
	)

	rootCmd := &cobra.Command{
		Use:   "apple2emu",
		Short: "Apple II-class 6502 / Disk II emulator core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := apple2.Config{
				Width:        width,
				Height:       height,
				EnableDisasm: disasm,
			}

			logger := apple2.NewLogger(cmd.OutOrStdout())

			machine, err := apple2.NewMachine(cfg, logger)
			if err != nil {
				return fmt.Errorf("initializing machine: %w", err)
			}

			if disk1 != "" {
				if err := machine.InsertDisk(1, disk1, apple2.ImageDOS); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), machine.DebugDump())
					return fmt.Errorf("inserting disk 1 (%s): %w", disk1, err)
				}
			}
			if disk2 != "" {
				if err := machine.InsertDisk(2, disk2, apple2.ImageDOS); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), machine.DebugDump())
					return fmt.Errorf("inserting disk 2 (%s): %w", disk2, err)
				}
			}

			if err := machine.Boot(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), machine.DebugDump())
				return fmt.Errorf("booting machine: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "apple2emu booted (%dx%d)\n", width, height)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.IntVar(&width, "width", 560, "window width in pixels")
	flags.IntVar(&height, "height", 384, "window height in pixels")
	flags.StringVar(&disk1, "disk1", "", "path to a 143,360-byte disk image for drive 1, loaded in DOS 3.3 sector order")
	flags.StringVar(&disk2, "disk2", "", "path to a 143,360-byte disk image for drive 2, loaded in DOS 3.3 sector order")
	flags.BoolVar(&disasm, "disasm", false, "log each instruction as it's decoded")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
