package main

import (
	"fmt"
	"github.com/ZenLiuCN/dlib"
	"github.com/ZenLiuCN/dlib/pool"
	"github.com/ZenLiuCN/fn"
	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
	"os"
	"strconv"
)

func main() {
	log.SetHandler(clihandler.Default)
	app := cli.NewApp()
	app.Usage = "native library symbol checker"
	app.Name = "dlcheck"
	app.Description = "open shared libraries and resolve symbols the way dlib does"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, EnvVars: []string{"DLIB_DEBUG"}, Usage: "debug logging"},
		&cli.BoolFlag{Name: "now", EnvVars: []string{"DLIB_NOW"}, Usage: "resolve every relocation at open"},
		&cli.BoolFlag{Name: "global", EnvVars: []string{"DLIB_GLOBAL"}, Usage: "open with global symbol visibility"},
	}
	app.Before = func(ctx *cli.Context) error {
		if ctx.Bool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{Name: "check",
			Action:    check,
			Usage:     "look up every symbol of a library and report the missing ones",
			ArgsUsage: "LIB SYMBOL...",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "dump", Usage: "dump the report"},
				&cli.BoolFlag{Name: "process", Aliases: []string{"p"}, Usage: "look up in the process image instead of LIB"},
			},
		},
		{Name: "open",
			Action:    open,
			Usage:     "open a library and resolve symbols, stopping at the first missing one",
			ArgsUsage: "LIB SYMBOL...",
		},
		{Name: "first",
			Action:    first,
			Usage:     "open the first library candidate exporting every symbol",
			ArgsUsage: "LIB...",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "required symbol"},
			},
		},
		{Name: "call",
			Action:    call,
			Usage:     "call a double(double...) function with up to 3 arguments",
			ArgsUsage: "LIB SYMBOL [ARG...]",
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("failure")
	}
}

func loader(ctx *cli.Context) dlib.Loader {
	flags := dlib.DefaultFlags
	if ctx.Bool("now") {
		flags |= dlib.FlagNow
	}
	if ctx.Bool("global") {
		flags |= dlib.FlagGlobal
	}
	return dlib.Loader{Strategy: dlib.Dynamic{Flags: flags}, Logger: log.Log}
}

func check(ctx *cli.Context) (err error) {
	args := ctx.Args().Slice()
	if len(args) < 1 {
		return fmt.Errorf("missing library")
	}
	s := loader(ctx).Strategy
	if ctx.Bool("process") {
		s = dlib.Process{}
	}
	var r *dlib.Report
	if r, err = dlib.Check(s, args[0], args[1:]...); err != nil {
		return
	}
	if ctx.Bool("dump") {
		spew.Dump(r)
	}
	fmt.Print(r.String())
	return r.Err()
}

func open(ctx *cli.Context) (err error) {
	args := ctx.Args().Slice()
	if len(args) < 1 {
		return fmt.Errorf("missing library")
	}
	addrs := make([]uintptr, len(args)-1)
	symbols := make([]dlib.Symbol, len(addrs))
	for i, s := range args[1:] {
		symbols[i] = dlib.Addr(s, &addrs[i])
	}
	var lib *dlib.Library
	if lib, err = loader(ctx).Open(args[0], symbols...); err != nil {
		return
	}
	defer fn.IgnoreClose(lib)
	for i, s := range lib.Symbols() {
		fmt.Printf("%s\t%#x\n", s, addrs[i])
	}
	return
}

func first(ctx *cli.Context) (err error) {
	names := ctx.Args().Slice()
	req := ctx.StringSlice("symbol")
	addrs := make([]uintptr, len(req))
	symbols := make([]dlib.Symbol, len(req))
	for i, s := range req {
		symbols[i] = dlib.Addr(s, &addrs[i])
	}
	p := pool.NewPool(loader(ctx))
	defer fn.IgnoreClose(p)
	var lib *dlib.Library
	if lib, err = p.LoadFirst("first", names, symbols...); err != nil {
		return
	}
	fmt.Println(lib.Name())
	return
}

func call(ctx *cli.Context) (err error) {
	args := ctx.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("missing library or symbol")
	}
	in := make([]float64, len(args)-2)
	for i, a := range args[2:] {
		if in[i], err = strconv.ParseFloat(a, 64); err != nil {
			return
		}
	}
	sym, invoke, err := doubles(args[1], len(in))
	if err != nil {
		return
	}
	var lib *dlib.Library
	if lib, err = loader(ctx).Open(args[0], sym); err != nil {
		return
	}
	defer fn.IgnoreClose(lib)
	fmt.Println(strconv.FormatFloat(invoke(in), 'g', -1, 64))
	return
}

// doubles declares a double function of the arity, and an invoker of the bound function.
func doubles(name string, arity int) (dlib.Symbol, func([]float64) float64, error) {
	switch arity {
	case 0:
		var f func() float64
		return dlib.Func(name, &f), func([]float64) float64 { return f() }, nil
	case 1:
		var f func(float64) float64
		return dlib.Func(name, &f), func(a []float64) float64 { return f(a[0]) }, nil
	case 2:
		var f func(float64, float64) float64
		return dlib.Func(name, &f), func(a []float64) float64 { return f(a[0], a[1]) }, nil
	case 3:
		var f func(float64, float64, float64) float64
		return dlib.Func(name, &f), func(a []float64) float64 { return f(a[0], a[1], a[2]) }, nil
	default:
		return dlib.Symbol{}, nil, fmt.Errorf("unsupported arity %d", arity)
	}
}
