/*
Some code in this file was copied from the go "flag" package source and
modified. That code's license is retained here:

Copyright (c) 2009 The Go Authors. All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

package libopts

import "strings"

// Occurrence is one compiled option's worth of argv-derived data: a single
// value for a "single"-kind option, or an ordered list of values for an
// "array"-kind one.
type Occurrence struct {
	Key    OptionKey
	Value  string
	Values []string
}

// Occurrences is the C3 output: every compiled option that was seen at
// least once in argv, keyed by its OptionKey.
type Occurrences struct {
	byKey map[OptionKey]*Occurrence
}

func newOccurrences() *Occurrences {
	return &Occurrences{byKey: map[OptionKey]*Occurrence{}}
}

// Get returns the occurrence recorded for k, if any.
func (o *Occurrences) Get(k OptionKey) (*Occurrence, bool) {
	occ, ok := o.byKey[k]
	return occ, ok
}

// argParser is a single-pass, left-to-right scanner over argv, structured
// like the teacher's parser (isobit-cli/parse.go), extended per spec.md
// §4.3 to handle array-kind accumulation, short-option clustering with
// attached/detached arguments, end-of-options, and POSIX mode — none of
// which the teacher's version needed, since it delegated repetition and
// array semantics to flag.Value.
type argParser struct {
	spec        *CompiledSpec
	occ         *Occurrences
	positionals []string
	posixly     bool
	args        []string
}

// ParseArgs implements the Argument Parser (C3): it scans argv against the
// compiled option table, producing the set of occurrences and the residual
// positional list, per spec.md §4.3. posixly corresponds to the `posixly`
// metadata on the error key (spec.md §6): when true, the first positional
// argument terminates option processing.
func ParseArgs(spec *CompiledSpec, argv []string, posixly bool) (*Occurrences, []string, error) {
	p := &argParser{spec: spec, occ: newOccurrences(), args: argv, posixly: posixly}
	if err := p.run(); err != nil {
		return nil, nil, err
	}
	return p.occ, p.positionals, nil
}

func (p *argParser) run() error {
	endOfOptions := false
	for len(p.args) > 0 {
		tok := p.args[0]

		switch {
		case endOfOptions:
			p.positionals = append(p.positionals, tok)
			p.args = p.args[1:]

		case tok == "--":
			endOfOptions = true
			p.args = p.args[1:]

		case tok == "-", !strings.HasPrefix(tok, "-"):
			// "-" alone is positional, not an option (spec.md §8).
			p.positionals = append(p.positionals, tok)
			p.args = p.args[1:]
			if p.posixly {
				endOfOptions = true
			}

		case strings.HasPrefix(tok, "--"):
			p.args = p.args[1:]
			if err := p.parseLong(tok[2:]); err != nil {
				return err
			}

		default:
			p.args = p.args[1:]
			if err := p.parseShortCluster(tok[1:]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *argParser) parseLong(rest string) error {
	name, value, hasValue := cutEquals(rest)
	k := longKey(name)
	entry, ok := p.spec.Options[k]
	if !ok {
		return illegalUsef("unknown option --%s", name)
	}

	switch entry.HasArg {
	case ArgRequired:
		if !hasValue {
			if len(p.args) == 0 {
				return illegalUsef("option --%s requires an argument", name)
			}
			value, p.args = p.args[0], p.args[1:]
		}
		return p.record(k, entry, value)

	case ArgOptional:
		if hasValue {
			return p.record(k, entry, value)
		}
		return p.record(k, entry, entry.FlagValue)

	default: // ArgNone
		if hasValue {
			return illegalUsef("option --%s does not take an argument", name)
		}
		return p.record(k, entry, entry.FlagValue)
	}
}

// parseShortCluster walks a run of short options packed into a single
// "-xyz"-style token, left to right. A required-argument option consumes
// either the rest of the token or the next argv token, and ends the
// cluster; any other option just records its flag value and the walk
// continues with the next character.
func (p *argParser) parseShortCluster(cluster string) error {
	i := 0
	for i < len(cluster) {
		c := cluster[i]
		k := shortKey(c)
		entry, ok := p.spec.Options[k]
		if !ok {
			return illegalUsef("unknown option -%c", c)
		}

		if entry.HasArg == ArgRequired {
			var value string
			if i+1 < len(cluster) {
				value = cluster[i+1:]
			} else {
				if len(p.args) == 0 {
					return illegalUsef("option -%c requires an argument", c)
				}
				value, p.args = p.args[0], p.args[1:]
			}
			return p.record(k, entry, value)
		}

		if err := p.record(k, entry, entry.FlagValue); err != nil {
			return err
		}
		i++
	}
	return nil
}

func (p *argParser) record(k OptionKey, entry *OptionEntry, value string) error {
	occ, exists := p.occ.byKey[k]
	if !exists {
		occ = &Occurrence{Key: k}
		p.occ.byKey[k] = occ
	}
	if entry.Kind == KindArray {
		occ.Values = append(occ.Values, value)
		return nil
	}
	if exists {
		return illegalUsef("option %s cannot be repeated", k)
	}
	occ.Value = value
	return nil
}

func cutEquals(s string) (name, value string, hasValue bool) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}
