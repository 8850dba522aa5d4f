/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import "infcanvas/internal/scene"

// Menu is a context menu snapshot for one node.
type Menu struct {
	Title   string
	Actions []scene.Action
}

func MenuFor(n *scene.Node) Menu { return Menu{Title: n.Name, Actions: n.Menu()} }

// Texts lists the entry labels in order.
func (m Menu) Texts() []string {
	out := make([]string, len(m.Actions))
	for i, a := range m.Actions {
		out[i] = a.Text
	}
	return out
}

// Trigger runs the first entry labelled text.
func (m Menu) Trigger(text string) bool {
	for _, a := range m.Actions {
		if a.Text == text {
			if a.Run != nil {
				a.Run()
			}
			return true
		}
	}
	return false
}
