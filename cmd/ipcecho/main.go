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

// Command ipcecho demonstrates the echo round trip from the callback
// dispatcher's point of view: a server registers one handler that
// replies to every req=1 with a req=2, and a client measures the
// round-trip latency.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sabouaram/linxipc/client"
	"github.com/sabouaram/linxipc/dispatcher"
	"github.com/sabouaram/linxipc/identifier"
	"github.com/sabouaram/linxipc/logger"
	"github.com/sabouaram/linxipc/message"
	"github.com/sabouaram/linxipc/queue"
	"github.com/sabouaram/linxipc/selector"
	"github.com/sabouaram/linxipc/server"
	"github.com/sabouaram/linxipc/transport"
)

const (
	echoReq uint32 = 1
	echoRsp uint32 = 2
)

var (
	flagName      string
	flagTimeoutMs int
)

func main() {
	flagTimeoutMs = 1000

	root := &cobra.Command{
		Use:   "ipcecho",
		Short: "Echo round-trip demo over an abstract Unix socket",
	}
	root.PersistentFlags().StringVar(&flagName, "name", "ipcecho", "abstract Unix socket name")
	root.AddCommand(serveCmd(), pingCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the echo server until SIGINT",
		RunE: func(*cobra.Command, []string) error {
			log := logger.New()
			srv, err := server.NewServer(flagName)
			if err != nil {
				return err
			}
			if !srv.Start() {
				return fmt.Errorf("ipcecho: failed to start server %q", flagName)
			}

			d := dispatcher.New(srv, log)
			d.Register(echoReq, func(env queue.Envelope, _ any) int {
				return env.SendResponse(message.New(echoRsp, nil))
			}, nil)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT)
			stopped := make(chan struct{})
			go func() {
				<-sig
				srv.Stop()
				close(stopped)
			}()

			fmt.Printf("ipcecho: serving on %q\n", flagName)
			for {
				select {
				case <-stopped:
					fmt.Println("ipcecho: stopped")
					return nil
				default:
					d.HandleMessage(250)
				}
			}
		},
	}
}

func pingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Send one req=1 and report the round-trip latency",
		RunE: func(*cobra.Command, []string) error {
			sock, err := transport.NewUnix(fmt.Sprintf("ipcecho-client-%d", os.Getpid()), logger.Discard())
			if err != nil {
				return err
			}
			defer sock.Close()

			c := client.New(sock, identifier.Path(flagName), logger.Discard())
			if !c.Connect(flagTimeoutMs) {
				return fmt.Errorf("ipcecho: no server answering at %q", flagName)
			}

			start := time.Now()
			_, ok := c.SendReceive(message.New(echoReq, []byte{0x41, 0x42, 0x43}), flagTimeoutMs, selector.Set{echoRsp})
			if !ok {
				return fmt.Errorf("ipcecho: echo request timed out")
			}
			fmt.Printf("ipcecho: round trip in %s\n", time.Since(start))
			return nil
		},
	}
	cmd.Flags().IntVar(&flagTimeoutMs, "timeout-ms", 1000, "request timeout in milliseconds")
	return cmd
}
