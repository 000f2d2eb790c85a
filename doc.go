/*
 * doc.go, part of godyno.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package dyno is the main package of the goDyno library. It holds the in-memory model of a
dynophore, a dynamic pharmacophore obtained from a molecular dynamics trajectory, and the
facilities for reading one from the directory of precomputed files a dynophore run writes.



	**goDyno capabilities**

    Reads a dynophore directory into an immutable aggregate of superfeatures
    (pharmacophoric features anchored to ligand atoms) and their environmental
    partners (macromolecule residues/atoms interacting with each superfeature),
    with one occurrence flag, and one interaction distance, per trajectory frame.
    Data files compressed with gzip or zstd are read transparently.

    Derives occurrence counts and frequencies at every level of the aggregate
    (whole superfeature, single interaction partner).

    Aggregates distance distributions, co-occurrence matrices and frequency
    tables (package stats), and distance histograms (package histo).

    Renders occurrence barcodes, interaction heatmaps and distance plots to
    image files (package dynoplot, which uses the Plotinum-descendant gonum
    plotting library).

    Reads the point-cloud representation written for 3D viewers, and derives
    the per-superfeature centroids and extents used to style it (package cloud).

    goDyno data can be JSON encoded and sent to external molecular viewers or
    notebook front ends, which render the 3D representation themselves.

The model is loaded once and never mutated afterwards; every derived quantity is a pure
function over it. There is no concurrency in the library, as everything operates on small,
already-resident data.*/
package dyno
