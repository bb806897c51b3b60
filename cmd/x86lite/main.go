// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/master-g/x86lite/internal/machine"
)

// stderrLogger prints trace lines to stderr, the sink wired in whenever
// --trace is passed.
type stderrLogger struct{}

func (stderrLogger) Log(msg string) { fmt.Fprintln(os.Stderr, msg) }

func main() {
	app := &cli.App{
		Name:    "x86lite",
		Usage:   "run a small x86lite fixture program to completion",
		Version: "v0.0.1",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a named in-repo fixture",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "fixture",
						Aliases: []string{"f"},
						Usage:   "fixture name (see x86lite list)",
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "print each executed instruction and flag state to stderr",
					},
				},
				Action: runFixture,
			},
			{
				Name:   "list",
				Usage:  "list the available fixture names",
				Action: listFixtures,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFixture(c *cli.Context) error {
	name := c.String("fixture")
	build, ok := machine.Fixtures[name]
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown fixture %q, see x86lite list", name), 1)
	}

	if c.Bool("trace") {
		machine.SetLogger(stderrLogger{})
		machine.SetTraceEnabled(true)
	}

	m, err := machine.NewMachine(build())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	result, err := m.Run()
	if err != nil {
		// Every fault Run returns is one of the two sentinels; both map
		// to the same exit code, but errors.Is keeps that an explicit
		// decision rather than an accident of "err != nil".
		if !errors.Is(err, machine.ErrSegfault) && !errors.Is(err, machine.ErrMalformedInstruction) {
			panic(fmt.Sprintf("x86lite: unexpected error type from Run: %v", err))
		}
		return cli.Exit(err.Error(), 1)
	}

	fmt.Println(result)
	return nil
}

func listFixtures(c *cli.Context) error {
	names := make([]string, 0, len(machine.Fixtures))
	for name := range machine.Fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
