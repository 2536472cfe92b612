package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the journal and mood entries, search,
and the dashboard summary as tools and resources.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}

			path := strings.TrimSpace(httpPath)
			if path == "" {
				path = "/mcp"
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			return withSession(cmd.Context(), func(s *session) error {
				defer s.follow(cmd.Context(), nil)()
				runner := mcp.Runner{
					Store:            s.Store,
					Logger:           s.Logger,
					Name:             "mellow",
					Version:          version,
					Transport:        t,
					HTTPEndpointPath: path,
					HTTPServerCert:   strings.TrimSpace(httpTLSCert),
					HTTPServerKey:    strings.TrimSpace(httpTLSKey),
				}

				if t == mcp.TransportHTTP {
					host := strings.TrimSpace(httpHost)
					if host == "" {
						host = "127.0.0.1"
					}
					if httpPort < 0 || httpPort > 65535 {
						return fmt.Errorf("invalid http-port %d", httpPort)
					}
					addr := net.JoinHostPort(host, strconv.Itoa(httpPort))
					runner.HTTPListenAddr = addr
					runner.OnHTTPListening = func(a net.Addr) {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", listenURL(a, host, path, runner.HTTPServerCert != ""))
					}
				}

				return runner.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// listenURL is the address clients should use for a server bound to a.
func listenURL(a net.Addr, host, path string, tls bool) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	tcpAddr, ok := a.(*net.TCPAddr)
	if !ok {
		return fmt.Sprintf("%s://%s%s", scheme, a.String(), path)
	}

	displayHost := host
	if displayHost == "" || displayHost == "0.0.0.0" || displayHost == "::" {
		if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
			displayHost = tcpAddr.IP.String()
		} else {
			displayHost = "127.0.0.1"
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(displayHost, strconv.Itoa(tcpAddr.Port)), path)
}
