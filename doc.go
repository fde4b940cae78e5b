/*
Package libopts resolves a program's command-line arguments and
environment variables against a declarative specification, and writes the
results into a caller-supplied configuration tree.

A host describes its options by annotating keys in the tree's "spec"
namespace with string-valued metadata:

	spec/name
	  opt = n
	  opt/long = name
	  opt/help = your name

	spec/greeting
	  opt/long = greeting
	  env = GREETING
	  opt/help = the greeting to use

	spec/excited
	  opt = x
	  opt/long = excited
	  opt/arg = none
	  opt/help = use an exclamation point

Resolve compiles that namespace into an option table and a resolution
plan, parses argv against the table, and writes each plan entry's chosen
value into the "proc" namespace sibling of its spec key, following the
precedence rule: short option, then long option, then environment
variable, then (for a key with `args = remaining`) the leftover
positional arguments.

	status, err := libopts.Resolve(tree, "error", os.Args, os.Environ())
	switch status {
	case libopts.StatusHelp:
		fmt.Print(libopts.HelpText(tree, "error"))
	case libopts.StatusError:
		log.Fatal(err)
	}

The resolver itself never coerces a value away from its raw string form;
Decode, built on mapstructure, is the opt-in layer for decoding a resolved
proc subtree into a typed struct. Package specfile loads a spec namespace
from a TOML file for hosts that would rather describe their options
declaratively than build a Tree by hand.
*/
package libopts
