package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ojassapate/drone-cam/pkg/cmd/server"
)

// serveRelayCmd represents the serve relay command
var serveRelayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Serve session relay instance",
	Run:   server.RunServeRelay(c),
}

func init() {
	serveCmd.AddCommand(serveRelayCmd)
}
