package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/config"
	"github.com/putrawardana/warungsaji/pkg/qr"
)

var (
	qrTableFlag string
	qrSizeFlag  int
	qrOutFlag   string
)

// qrCmd renders a storefront QR code PNG for printing.
var qrCmd = &cobra.Command{
	Use:   "qr [url]",
	Short: "Generate a storefront QR code PNG",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		target := config.StoreURL()
		if len(args) == 1 {
			target = args[0]
		}
		if qrTableFlag != "" {
			link, err := services.TableLink(config.StoreURL(), qrTableFlag)
			if err != nil {
				return err
			}
			target = link
		}

		png, err := qr.PNG(target, qrSizeFlag)
		if err != nil {
			return err
		}

		out := qrOutFlag
		if out == "" {
			out = "warungsaji-qr.png"
		}
		if err := os.WriteFile(out, png, 0o644); err != nil {
			return err
		}
		fmt.Printf("QR for %s written to %s\n", target, out)
		return nil
	},
}

func init() {
	qrCmd.Flags().StringVarP(&qrTableFlag, "table", "t", "", "Embed an encrypted table token for this table")
	qrCmd.Flags().IntVarP(&qrSizeFlag, "size", "s", qr.DefaultSize, "Image size in pixels")
	qrCmd.Flags().StringVarP(&qrOutFlag, "out", "o", "", "Output file (default warungsaji-qr.png)")
}
