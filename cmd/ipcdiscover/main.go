/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Command ipcdiscover is a small multicast service-registry daemon plus
// client, demonstrating the library's UDP multicast server variant and
// the callback dispatcher on top of it.
package main

import (
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sabouaram/linxipc/client"
	"github.com/sabouaram/linxipc/dispatcher"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/selector"
	"github.com/sabouaram/linxipc/server"
	"github.com/sabouaram/linxipc/transport"
)

const (
	defaultGroup = "239.255.255.250"
	defaultPort  = 12345
)

var (
	flagGroup     = defaultGroup
	flagPort      uint16
	flagName      string
	flagSvcPort   uint16
	flagTimeoutMs int
)

func main() {
	flagPort = defaultPort
	flagTimeoutMs = 2000

	root := &cobra.Command{
		Use:   "ipcdiscover",
		Short: "Multicast service-discovery daemon and client",
	}
	root.PersistentFlags().StringVar(&flagGroup, "group", defaultGroup, "multicast group address")
	root.PersistentFlags().Uint16Var(&flagPort, "port", defaultPort, "multicast port")

	root.AddCommand(serveCmd(), registerCmd(), unregisterCmd(), discoverCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func multicastIdentifier() (identifier.Identifier, netip.Addr, error) {
	addr, err := netip.ParseAddr(flagGroup)
	if err != nil {
		return identifier.Identifier{}, netip.Addr{}, err
	}
	return identifier.Port(addr, flagPort), addr, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the discovery daemon until SIGINT",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, group, err := multicastIdentifier()
			if err != nil {
				return err
			}

			log := logger.New()
			srv, err := server.NewUDPMulticastServer(group, flagPort, 100)
			if err != nil {
				return err
			}
			if !srv.Start() {
				return fmt.Errorf("ipcdiscover: failed to start multicast server on %s:%d", group, flagPort)
			}

			registry := newServiceRegistry()
			d := dispatcher.New(srv, log)
			d.Register(discoveryReq, handleDiscover(registry), nil)
			d.Register(registerReq, handleRegister(registry), nil)
			d.Register(unregisterReq, handleUnregister(registry), nil)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT)
			stopped := make(chan struct{})
			go func() {
				<-sig
				srv.Stop()
				close(stopped)
			}()

			fmt.Printf("ipcdiscover: serving on %s:%d\n", group, flagPort)
			for {
				select {
				case <-stopped:
					fmt.Println("ipcdiscover: stopped")
					return nil
				default:
					d.HandleMessage(250)
				}
			}
		},
	}
}

func handleDiscover(registry *serviceRegistry) dispatcher.Callback {
	return func(env queue.Envelope, _ any) int {
		name, err := decodeDiscoveryRequest(env.Message)
		if err != nil {
			return -1
		}
		entry, found := registry.get(name)
		if !found {
			return env.SendResponse(encodeDiscoveryResponse(netip.Addr{}, 0))
		}
		return env.SendResponse(encodeDiscoveryResponse(entry.addr, entry.port))
	}
}

func handleRegister(registry *serviceRegistry) dispatcher.Callback {
	return func(env queue.Envelope, _ any) int {
		name, port, err := decodeRegisterRequest(env.Message)
		if err != nil {
			return -1
		}
		registry.add(name, env.From.Addr(), port)
		return env.SendResponse(encodeSuccessResponse(registerRsp, true))
	}
}

func handleUnregister(registry *serviceRegistry) dispatcher.Callback {
	return func(env queue.Envelope, _ any) int {
		name, err := decodeUnregisterRequest(env.Message)
		if err != nil {
			return -1
		}
		ok := registry.remove(name)
		return env.SendResponse(encodeSuccessResponse(unregisterRsp, ok))
	}
}

func newDaemonClient() (client.Client, error) {
	peer, _, err := multicastIdentifier()
	if err != nil {
		return nil, err
	}
	sock, err := transport.NewUDP(0, logger.Discard())
	if err != nil {
		return nil, err
	}
	return client.New(sock, peer, logger.Discard()), nil
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a service with the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newDaemonClient()
			if err != nil {
				return err
			}
			rsp, ok := c.SendReceive(encodeRegisterRequest(flagName, flagSvcPort), flagTimeoutMs, selector.Set{registerRsp})
			if !ok {
				return fmt.Errorf("ipcdiscover: register timed out")
			}
			if !decodeSuccessResponse(rsp) {
				return fmt.Errorf("ipcdiscover: daemon rejected registration")
			}
			fmt.Printf("ipcdiscover: registered %q on port %d\n", flagName, flagSvcPort)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagName, "name", "", "service name")
	cmd.Flags().Uint16Var(&flagSvcPort, "svc-port", 0, "port the service listens on")
	cmd.Flags().IntVar(&flagTimeoutMs, "timeout-ms", 2000, "request timeout in milliseconds")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("svc-port")
	return cmd
}

func unregisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unregister",
		Short: "Unregister a service from the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newDaemonClient()
			if err != nil {
				return err
			}
			rsp, ok := c.SendReceive(encodeUnregisterRequest(flagName), flagTimeoutMs, selector.Set{unregisterRsp})
			if !ok {
				return fmt.Errorf("ipcdiscover: unregister timed out")
			}
			if !decodeSuccessResponse(rsp) {
				return fmt.Errorf("ipcdiscover: service %q was not registered", flagName)
			}
			fmt.Printf("ipcdiscover: unregistered %q\n", flagName)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagName, "name", "", "service name")
	cmd.Flags().IntVar(&flagTimeoutMs, "timeout-ms", 2000, "request timeout in milliseconds")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func discoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Look a service up through the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newDaemonClient()
			if err != nil {
				return err
			}
			rsp, ok := c.SendReceive(encodeDiscoveryRequest(flagName), flagTimeoutMs, selector.Set{discoveryRsp})
			if !ok {
				return fmt.Errorf("ipcdiscover: discover timed out")
			}
			addr, port, found, err := decodeDiscoveryResponse(rsp)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("ipcdiscover: %q not found\n", flagName)
				return nil
			}
			fmt.Printf("ipcdiscover: %q at %s:%d\n", flagName, addr, port)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagName, "name", "", "service name")
	cmd.Flags().IntVar(&flagTimeoutMs, "timeout-ms", 2000, "request timeout in milliseconds")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
