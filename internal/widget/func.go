/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"strings"
)

// ArgTrigger selects which activation of a Func an argument is passed to.
type ArgTrigger int

const (
	TriggerNone ArgTrigger = iota
	TriggerClick
	TriggerDoubleClick
)

func (t ArgTrigger) String() string {
	switch t {
	case TriggerClick:
		return "click"
	case TriggerDoubleClick:
		return "dclick"
	default:
		return "none"
	}
}

// FuncArg is one editable argument of a Func.
type FuncArg struct {
	Key     string
	Value   string
	Checked bool
	// KeyOutput includes the key in Parse output.
	KeyOutput bool
	Comment   string
	Trigger   ArgTrigger
	// ReadOnly makes the value column of a FuncArgsTable read-only.
	ReadOnly bool

	FormatKey   func(string) string
	FormatValue func(string) string
}

// NewArg returns an argument whose key is included in its output.
func NewArg(key, value string, trigger ArgTrigger) *FuncArg {
	return &FuncArg{Key: key, Value: value, KeyOutput: true, Trigger: trigger}
}

func spaced(s string) string { return " " + s }

// Parse renders the argument as command-line text. Unchecked arguments
// produce nothing.
func (a *FuncArg) Parse() string {
	if !a.Checked {
		return ""
	}
	fk, fv := a.FormatKey, a.FormatValue
	if fk == nil {
		fk = spaced
	}
	if fv == nil {
		fv = spaced
	}
	var b strings.Builder
	if a.KeyOutput {
		b.WriteString(fk(a.Key))
	}
	if a.Value != "" {
		b.WriteString(fv(a.Value))
	}
	return b.String()
}

// JoinArgs concatenates Parse of every argument.
func JoinArgs(args []*FuncArg) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(a.Parse())
	}
	return b.String()
}

// Func is a named action with arguments, optionally with child Funcs. Click
// runs OnClick with the click-triggered arguments; DoubleClick runs
// OnDoubleClick with the double-click ones.
type Func struct {
	Name          string
	OnClick       func(args []*FuncArg)
	OnDoubleClick func(args []*FuncArg)
	Args          []*FuncArg
	Children      []*Func

	parent *Func
}

// NewFunc returns a Func with the given children attached.
func NewFunc(name string, children ...*Func) *Func {
	f := &Func{Name: name}
	f.Add(children...)
	return f
}

// Add appends children and sets their parent.
func (f *Func) Add(children ...*Func) {
	for _, c := range children {
		c.parent = f
		f.Children = append(f.Children, c)
	}
}

func (f *Func) Parent() *Func { return f.parent }
func (f *Func) IsLeaf() bool  { return len(f.Children) == 0 }

func (f *Func) Click() {
	if f.OnClick != nil {
		f.OnClick(f.argsFor(TriggerClick))
	}
}

func (f *Func) DoubleClick() {
	if f.OnDoubleClick != nil {
		f.OnDoubleClick(f.argsFor(TriggerDoubleClick))
	}
}

func (f *Func) argsFor(t ArgTrigger) []*FuncArg {
	var out []*FuncArg
	for _, a := range f.Args {
		if a.Trigger == t {
			out = append(out, a)
		}
	}
	return out
}

// Run wraps a plain callback as a click handler.
func Run(name string, fn func()) *Func {
	return &Func{Name: name, OnClick: func([]*FuncArg) { fn() }}
}
