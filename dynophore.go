/*
 * dynophore.go, part of godyno.
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

package dyno

import (
	"fmt"
	"math"
)

// EnvPartner is one environmental partner of a superfeature: a residue/atom set on the
// macromolecule side that interacts with the superfeature. It records, for every frame of the
// trajectory, whether the interaction occurs and at which distance. Where the interaction does
// not occur the distance is NaN, so the number of real distances always equals the occurrence
// count.
type EnvPartner struct {
	id            string //e.g. "ASP-86-A"
	residueName   string
	residueNumber int
	chain         string
	atomNumbers   []int
	occurrences   []bool
	distances     []float64
}

// NewEnvPartner builds an environmental partner from its identity and per-frame series.
// Occurrences and distances must have the same length. The given slices are copied, and the
// distance of every frame with a false occurrence flag is replaced by NaN, the "not
// interacting" sentinel.
func NewEnvPartner(id, residueName string, residueNumber int, chain string, atomNumbers []int, occurrences []bool, distances []float64) (*EnvPartner, error) {
	if len(occurrences) != len(distances) {
		return nil, DataError{fmt.Sprintf("%s: %d occurrence flags but %d distances", id, len(occurrences), len(distances)), "", MalformedData, []string{"NewEnvPartner"}, true}
	}
	E := new(EnvPartner)
	E.id = id
	E.residueName = residueName
	E.residueNumber = residueNumber
	E.chain = chain
	E.atomNumbers = append([]int{}, atomNumbers...)
	E.occurrences = append([]bool{}, occurrences...)
	E.distances = make([]float64, len(distances))
	for i, v := range distances {
		if E.occurrences[i] {
			E.distances[i] = v
		} else {
			E.distances[i] = math.NaN()
		}
	}
	return E, nil
}

//ID returns the identifier of the partner, e.g. "ASP-86-A"
func (E *EnvPartner) ID() string { return E.id }

//ResidueName returns the 3-letter residue name of the partner
func (E *EnvPartner) ResidueName() string { return E.residueName }

//ResidueNumber returns the residue number of the partner
func (E *EnvPartner) ResidueNumber() int { return E.residueNumber }

//Chain returns the chain identifier of the partner
func (E *EnvPartner) Chain() string { return E.chain }

//AtomNumbers returns a copy of the macromolecule atom numbers of the partner
func (E *EnvPartner) AtomNumbers() []int {
	return append([]int{}, E.atomNumbers...)
}

//NFrames returns the number of trajectory frames in the partner's series
func (E *EnvPartner) NFrames() int { return len(E.occurrences) }

//Occurrence returns whether the interaction occurs in the ith frame.
//It panics if i is out of range, as a slice would.
func (E *EnvPartner) Occurrence(i int) bool { return E.occurrences[i] }

//Occurrences returns a copy of the per-frame occurrence flags
func (E *EnvPartner) Occurrences() []bool {
	return append([]bool{}, E.occurrences...)
}

//Distance returns the interaction distance in the ith frame, NaN if the
//interaction does not occur in that frame. Panics if i is out of range.
func (E *EnvPartner) Distance(i int) float64 { return E.distances[i] }

//Distances returns a copy of the per-frame distances, with NaN on the
//frames where the interaction does not occur.
func (E *EnvPartner) Distances() []float64 {
	return append([]float64{}, E.distances...)
}

//Count returns the number of frames in which the interaction occurs
func (E *EnvPartner) Count() int {
	c := 0
	for _, v := range E.occurrences {
		if v {
			c++
		}
	}
	return c
}

//Frequency returns the percentage of frames in which the interaction occurs,
//rounded to 2 decimals.
func (E *EnvPartner) Frequency() float64 {
	return percent(E.Count(), E.NFrames())
}

// Superfeature is a pharmacophoric feature anchored to a set of ligand atoms, tracked along
// the trajectory, together with the environmental partners it interacts with.
type Superfeature struct {
	id          string //e.g. "HBA[4619]"
	featureType string //e.g. "HBA"
	atomNumbers []int
	occurrences []bool
	envPartners []*EnvPartner
}

// NewSuperfeature builds a superfeature from its identity, per-frame occurrence flags and
// environmental partners. Every partner series must have the same length as the occurrence
// series. The occurrence slice is copied; the partners are kept as given.
func NewSuperfeature(id, featureType string, atomNumbers []int, occurrences []bool, envPartners []*EnvPartner) (*Superfeature, error) {
	for _, ep := range envPartners {
		if ep.NFrames() != len(occurrences) {
			return nil, DataError{fmt.Sprintf("%s: partner %s has %d frames, superfeature has %d", id, ep.ID(), ep.NFrames(), len(occurrences)), "", MalformedData, []string{"NewSuperfeature"}, true}
		}
	}
	S := new(Superfeature)
	S.id = id
	S.featureType = featureType
	S.atomNumbers = append([]int{}, atomNumbers...)
	S.occurrences = append([]bool{}, occurrences...)
	S.envPartners = append([]*EnvPartner{}, envPartners...)
	return S, nil
}

//ID returns the identifier of the superfeature, e.g. "HBA[4619]"
func (S *Superfeature) ID() string { return S.id }

//FeatureType returns the pharmacophoric feature type, e.g. "HBA"
func (S *Superfeature) FeatureType() string { return S.featureType }

//AtomNumbers returns a copy of the ligand atom numbers the superfeature is anchored to
func (S *Superfeature) AtomNumbers() []int {
	return append([]int{}, S.atomNumbers...)
}

//NFrames returns the number of trajectory frames in the superfeature's series
func (S *Superfeature) NFrames() int { return len(S.occurrences) }

//Occurrence returns whether the superfeature occurs in the ith frame.
//Panics if i is out of range.
func (S *Superfeature) Occurrence(i int) bool { return S.occurrences[i] }

//Occurrences returns a copy of the per-frame occurrence flags
func (S *Superfeature) Occurrences() []bool {
	return append([]bool{}, S.occurrences...)
}

//Count returns the number of frames in which the superfeature occurs,
//regardless of the partner involved.
func (S *Superfeature) Count() int {
	c := 0
	for _, v := range S.occurrences {
		if v {
			c++
		}
	}
	return c
}

//Frequency returns the percentage of frames in which the superfeature occurs,
//rounded to 2 decimals.
func (S *Superfeature) Frequency() float64 {
	return percent(S.Count(), S.NFrames())
}

//NEnvPartners returns the number of environmental partners of the superfeature
func (S *Superfeature) NEnvPartners() int { return len(S.envPartners) }

//EnvPartners returns the environmental partners of the superfeature, in loading order
func (S *Superfeature) EnvPartners() []*EnvPartner {
	return append([]*EnvPartner{}, S.envPartners...)
}

//EnvPartnerIDs returns the IDs of the environmental partners, in loading order
func (S *Superfeature) EnvPartnerIDs() []string {
	ids := make([]string, len(S.envPartners))
	for i, v := range S.envPartners {
		ids[i] = v.ID()
	}
	return ids
}

//EnvPartner returns the environmental partner with the given ID, or an
//UnknownSelection error if the superfeature has no such partner.
func (S *Superfeature) EnvPartner(id string) (*EnvPartner, error) {
	for _, v := range S.envPartners {
		if v.ID() == id {
			return v, nil
		}
	}
	return nil, DataError{fmt.Sprintf("superfeature %s has no partner %s", S.id, id), "", UnknownSelection, []string{"EnvPartner"}, true}
}

// Dynophore is the aggregate root: the whole dynamic pharmacophore model of one
// ligand-macromolecule trajectory. It is built once, by NewDynophore or DynophoreRead, and
// never mutated afterwards. All its per-frame series share one length and frame indexing.
type Dynophore struct {
	id            string
	superfeatures []*Superfeature
}

// NewDynophore builds a dynophore from its superfeatures. There must be at least one, and all
// must have the same frame count.
func NewDynophore(id string, superfeatures []*Superfeature) (*Dynophore, error) {
	if len(superfeatures) == 0 {
		return nil, DataError{id + ": no superfeatures", "", MalformedData, []string{"NewDynophore"}, true}
	}
	n := superfeatures[0].NFrames()
	for _, sf := range superfeatures {
		if sf.NFrames() != n {
			return nil, DataError{fmt.Sprintf("%s: superfeature %s has %d frames, %s has %d", id, sf.ID(), sf.NFrames(), superfeatures[0].ID(), n), "", MalformedData, []string{"NewDynophore"}, true}
		}
	}
	D := new(Dynophore)
	D.id = id
	D.superfeatures = append([]*Superfeature{}, superfeatures...)
	return D, nil
}

//ID returns the name of the dynophore, e.g. "1KE7-1"
func (D *Dynophore) ID() string { return D.id }

//NFrames returns the number of frames of the underlying trajectory
func (D *Dynophore) NFrames() int { return D.superfeatures[0].NFrames() }

//NSuperfeatures returns the number of superfeatures of the dynophore
func (D *Dynophore) NSuperfeatures() int { return len(D.superfeatures) }

//Superfeatures returns the superfeatures of the dynophore, in loading order
func (D *Dynophore) Superfeatures() []*Superfeature {
	return append([]*Superfeature{}, D.superfeatures...)
}

//SuperfeatureIDs returns the IDs of the superfeatures, in loading order
func (D *Dynophore) SuperfeatureIDs() []string {
	ids := make([]string, len(D.superfeatures))
	for i, v := range D.superfeatures {
		ids[i] = v.ID()
	}
	return ids
}

//HasSuperfeature returns whether the dynophore contains a superfeature with the given ID
func (D *Dynophore) HasSuperfeature(id string) bool {
	_, err := D.Superfeature(id)
	return err == nil
}

//Superfeature returns the superfeature with the given ID, or an UnknownSelection
//error if the dynophore has no such superfeature.
func (D *Dynophore) Superfeature(id string) (*Superfeature, error) {
	for _, v := range D.superfeatures {
		if v.ID() == id {
			return v, nil
		}
	}
	return nil, DataError{fmt.Sprintf("%s has no superfeature %s", D.id, id), "", UnknownSelection, []string{"Superfeature"}, true}
}

//percent returns count/total as a percentage rounded to 2 decimals.
//A zero total yields 0, so an empty or all-false series is a 0% frequency,
//not a NaN.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
