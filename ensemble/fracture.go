// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ensemble

// tryFractureAll walks the filament list by index (re-reading len() each
// iteration) so a filament produced by an earlier split can itself fracture
// again within the same step, per spec.md §4.5. Any motor or crosslinker
// head bound to a filament about to split is detached first, since Split
// does not know about motor state.
func (n *Network) tryFractureAll() {
	for i := 0; i < len(n.Filaments); i++ {
		f := n.Filaments[i]
		node := f.FractureNode()
		if node < 0 {
			continue
		}
		if n.Motors != nil {
			n.Motors.DetachAll(n.Filaments, i)
		}
		if n.Xlinks != nil {
			n.Xlinks.DetachAll(n.Filaments, i)
		}
		id0 := f.Id
		id1 := n.nextFilID
		n.nextFilID++
		left, right := f.Split(node, id0, id1)
		n.Filaments[i] = left
		n.Filaments = append(n.Filaments, right)
	}
}
