// Command greet is a minimal demonstration of the resolver, modeled on
// the teacher's own greet example: a short option, a long-only option
// bound to an environment variable, and a required name, plus one
// array-kind option to show repeatable values and trailing positionals.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"libopts"
	liblog "libopts/slog"
	"libopts/specfile"
)

const greetSpecTOML = `
[[keys]]
path = "spec/excited"
value = ""
[keys.meta]
opt = "x"
"opt/long" = "excited"
"opt/arg" = "none"
"opt/help" = "use an exclamation point"

[[keys]]
path = "spec/greeting"
value = ""
[keys.meta]
"opt/long" = "greeting"
env = "GREETING"
"opt/help" = "the greeting to use"

[[keys]]
path = "spec/name"
value = ""
[keys.meta]
opt = "n"
"opt/long" = "name"
"opt/help" = "your name"

[[keys]]
path = "spec/tags/#"
value = ""
[keys.meta]
"opt/long" = "tag"
args = "remaining"
"opt/help" = "extra tag, repeatable; without --tag, trailing positionals land here"
`

type greetOptions struct {
	Excited  bool
	Greeting string
	Name     string
	Tags     []string
}

func main() {
	liblog.FromEnviron(os.Environ()).Configure()

	spec, err := specfile.Decode([]byte(greetSpecTOML))
	if err != nil {
		slog.Error("invalid spec", "error", err)
		os.Exit(1)
	}

	const errorKey = "error"
	status, err := libopts.Resolve(spec, errorKey, os.Args, os.Environ())
	switch status {
	case libopts.StatusHelp:
		fmt.Print(libopts.HelpText(spec, errorKey))
		return
	case libopts.StatusError:
		slog.Error("option resolution failed", "error", err)
		fmt.Fprint(os.Stderr, libopts.HelpText(spec, errorKey))
		os.Exit(1)
	}

	var greet greetOptions
	if err := libopts.Decode(spec, "proc", &greet); err != nil {
		slog.Error("decode failed", "error", err)
		os.Exit(1)
	}

	if greet.Greeting == "" {
		greet.Greeting = "Hey"
	}
	punctuation := "."
	if greet.Excited {
		punctuation = "!"
	}
	fmt.Printf("%s, %s%s\n", greet.Greeting, greet.Name, punctuation)
	if len(greet.Tags) > 0 {
		slog.Info("received tags", "tags", greet.Tags)
	}
}
