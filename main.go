package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/maxsets/cmd"
	"github.com/timtadh/maxsets/config"
	"github.com/timtadh/maxsets/miners"
	"github.com/timtadh/maxsets/miners/reporters"
)

func init() {
	cmd.UsageMessage = "maxsets --help"
	cmd.ExtendedMessage = `
maxsets - the most frequent author sets of every size

$ maxsets --support=<int> [Global Options] <input-path> \
    [<reporter> [Reporter Options]]

Each line of the input is one publication (a basket) listing its authors
separated by --separator. Starting from single authors, maxsets finds every
set of k authors that co-occur in at least --support publications, then uses
those to find the sets of k+1 authors, until no set is frequent or --k is
reached. For every k it reports the largest support and the author sets that
reach it.

Note: You may either supply the <input-path> as a regular file, a gzipped
      file (extension '.gz') or a directory whose files are concatenated.

Note: If you don't supply a reporter by default it will use
      'chain log summary'.

Global Options
    -h, --help                view this message
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (needed by the file
                              and dir reporters)
                              NB: will overwrite contents of dir
    -c, --cache=<path>        keep the basket store in this directory
                              instead of anonymous memory maps
    --config=<path>           a YAML file with the options below
                              (support, k, strategy, parallelism, separator,
                              output, cache). Flags override it.
    -s, --support=<int>       minimum support of an author set (required)
    -k, --k=<int>             stop after sets of this size (default: run
                              until no set is frequent)
    --strategy=<name>         how the candidates of the next level are made
                              join    join pairs of frequent sets
                              basket  expand each publication (default)
    -p, --parallelism=<int>   workers used to join and count. -1 uses every
                              cpu (default 0, a single worker)
    --separator=<string>      the author separator (default ",", use " " to
                              split on whitespace)
    --describe                print a description of the dataset and exit
    --metrics=<path>          write prometheus metrics of the run to path
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

    heap-profile Reporter

        $ maxsets ... chain ... heap-profile [options]

        -p, profile=<path>    append a heap-profile after every level here
        -d, dir=<path>        write one heap-profile per level to this dir

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log each level
    summary                   print a table of the levels on exit
    file                      write the maximal sets to a file in the output dir
    dir                       write each level to a nested dir format
    skip                      takes an "inner reporter" and passes it only the
                              levels of size --below and larger

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -m, maximal=<name>    the name (without extension) of the file in the
                              output directory (default maximal)

        Each line is: k <TAB> support <TAB> authors

    dir Options
        -d, dir-name=<name>   name of the directory (default levels)

    skip Options
        -b, below=<int>       smallest level passed on (default 2)

    Examples

        $ maxsets --support=10 ./authors.txt

        $ maxsets -o /tmp/maxsets --support=10 --k=4 --strategy=join -p -1 \
            ./authors.txt.gz \
            chain log file summary

        $ maxsets --skip-log=DEBUG -o /tmp/maxsets --support=3 \
            ./publications/ \
            chain \
                log -p all \
                skip --below=3 \
                    chain \
                        log -p big \
                        dir \
                    endchain \
                summary
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:c:s:k:p:",
		[]string{
			"help",
			"output=", "cache=",
			"config=",
			"reporters",
			"support=",
			"k=",
			"strategy=",
			"parallelism=",
			"separator=",
			"describe",
			"metrics=",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments try:")
		fmt.Fprintf(os.Stderr, "$ %v --support=2 %v\n", os.Args[0], strings.Join(os.Args[1:], " "))
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	// the config file is loaded first so the other flags override it
	conf := &config.Config{}
	for _, oa := range optargs {
		if oa.Opt() == "--config" {
			conf, err = config.LoadFile(cmd.AssertFileOrDirExists(oa.Arg()))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage(cmd.ErrorCodes["badconfig"])
			}
		}
	}
	describe := false
	metrics := ""
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "--config":
		case "-o", "--output":
			conf.Output = oa.Arg()
		case "-c", "--cache":
			conf.Cache = oa.Arg()
		case "-s", "--support":
			conf.Support = cmd.ParseInt(oa.Arg())
		case "-k", "--k":
			conf.TargetK = cmd.ParseInt(oa.Arg())
			if conf.TargetK < 1 {
				fmt.Fprintf(os.Stderr, "k < 1, must be >= 1\n")
				cmd.Usage(cmd.ErrorCodes["opts"])
			}
		case "--strategy":
			conf.Strategy = oa.Arg()
		case "-p", "--parallelism":
			conf.Parallelism = cmd.ParseInt(oa.Arg())
		case "--separator":
			conf.Separator = oa.Arg()
		case "--describe":
			describe = true
		case "--metrics":
			metrics = cmd.AssertFile(oa.Arg())
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if conf.Support <= 0 && !describe {
		fmt.Fprintf(os.Stderr, "Support <= 0, must be > 0\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	} else if conf.Support <= 0 {
		conf.Support = 1
	}
	if conf.Output != "" {
		conf.Output = cmd.EmptyDir(conf.Output)
	}
	if conf.Cache != "" {
		conf.Cache = cmd.AssertDir(conf.Cache)
	}

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	observers := miners.Observers{&reporters.LogObserver{Level: "DEBUG"}}
	var m *reporters.Metrics
	if metrics != "" {
		m = reporters.NewMetrics()
		observers = append(observers, m)
	}
	code := cmd.Main(args, conf, describe, observers)
	if m != nil {
		if err := m.WriteFile(metrics); err != nil {
			errors.Logf("ERROR", "could not write metrics: %v", err)
			code++
		}
	}
	return code
}
