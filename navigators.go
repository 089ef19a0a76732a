// navigators.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file declares the Navigator interface used to control
// traversal of a compound-word Dawg, along with FindNavigator, the
// plain word-membership navigator used by Dawg.Contains.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package binpack

// Navigator is an interface describing behaviors that control the
// navigation of a Dawg.
type Navigator interface {
	IsAccepting() bool
	Accepts(rune) bool
	Accept(matched []rune, final bool)
	PushEdge(rune) bool
	PopEdge() bool
	Done()
}

// Navigation holds the state of a single traversal underway within a
// Dawg.
type Navigation struct {
	dawg      *Dawg
	navigator Navigator
}

// Go starts a navigation on dawg using navigator, from the root.
func (nav *Navigation) Go(dawg *Dawg, navigator Navigator) {
	if nav == nil || dawg == nil || navigator == nil {
		return
	}
	nav.dawg = dawg
	nav.navigator = navigator
	if navigator.IsAccepting() {
		nav.FromNode(dawg.rootOffset(), nil)
	}
	navigator.Done()
}

// FromNode continues a navigation from a node, enumerating outgoing
// edges until the navigator is satisfied.
func (nav *Navigation) FromNode(offset uint32, matched []rune) {
	edges := nav.dawg.edgesAt(offset)
	for _, e := range *edges {
		if len(e.prefix) == 0 {
			continue
		}
		if nav.navigator.PushEdge(e.prefix[0]) {
			nav.FromEdge(e, matched)
			if !nav.navigator.PopEdge() {
				break
			}
		}
	}
}

// FromEdge walks the (possibly multi-rune) prefix of a single edge.
func (nav *Navigation) FromEdge(e dawgEdge, alreadyMatched []rune) {
	navigator := nav.navigator
	matched := make([]rune, len(alreadyMatched), len(alreadyMatched)+len(e.prefix))
	copy(matched, alreadyMatched)
	for j := 0; j < len(e.prefix) && navigator.IsAccepting(); j++ {
		if !navigator.Accepts(e.prefix[j]) {
			return
		}
		matched = append(matched, e.prefix[j])
		final := false
		if j == len(e.prefix)-1 && e.terminal {
			final = true
		}
		navigator.Accept(matched, final)
	}
	if e.nextNode != 0 && navigator.IsAccepting() {
		nav.FromNode(e.nextNode, matched)
	}
}

// FindNavigator implements Navigator to test plain word membership.
type FindNavigator struct {
	word    []rune
	lenWord int
	index   int
	found   bool
}

// Init prepares a FindNavigator to search for word.
func (fn *FindNavigator) Init(word string) {
	fn.word = []rune(word)
	fn.lenWord = len(fn.word)
}

func (fn *FindNavigator) IsAccepting() bool {
	return fn.index < fn.lenWord
}

func (fn *FindNavigator) Accepts(chr rune) bool {
	return fn.word[fn.index] == chr
}

func (fn *FindNavigator) Accept(matched []rune, final bool) {
	fn.index++
	if fn.index == fn.lenWord && final {
		fn.found = true
	}
}

func (fn *FindNavigator) PushEdge(chr rune) bool {
	return fn.index < fn.lenWord && fn.word[fn.index] == chr
}

func (fn *FindNavigator) PopEdge() bool {
	// Only one outgoing edge can possibly match a specific next
	// letter, so there's no need to try siblings.
	return false
}

func (fn *FindNavigator) Done() {}
