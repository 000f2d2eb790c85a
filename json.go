/*
 * json.go, part of godyno.
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
	"encoding/json"
	"io"
	"strings"
)

/*JSON transfer of dynophore data, so external molecular viewers and notebook front ends can
receive the model without linking goDyno. The summary is sent first, as one JSON document, then
one document per per-frame series if requested, so a consumer can stop reading after the
summary.*/

//An easily JSON-serializable error type,
type JSONError struct {
	IsError      bool   //If this is false (no error) all the other fields will be at their zero-values.
	InSummary    bool   //If error, was it in encoding the summary?
	InSeries     bool   //Was it in encoding a per-frame series?
	Superfeature string //Which superfeature, if any?
	Function     string //which go function gave the error
	Message      string //the error itself
}

//implements the error interface
func (J *JSONError) Error() string {
	return J.Message
}

//Serializes the error. Panics on failure.
func (J *JSONError) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - ")) //well, shit.
	}
	return ret
}

//Takes an error and some additional info to create a JSON error
func MakeJSONError(where, function string, err error) *JSONError {
	jerr := new(JSONError)
	jerr.IsError = true
	switch where {
	case "summary":
		jerr.InSummary = true
	default:
		jerr.InSeries = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

//JSONSummary is the top-level document sent to viewers.
type JSONSummary struct {
	ID            string
	NFrames       int
	Superfeatures []*JSONSuperfeature
}

type JSONSuperfeature struct {
	ID          string
	FeatureType string
	AtomNumbers []int
	Frequency   float64
	EnvPartners []*JSONEnvPartner
}

type JSONEnvPartner struct {
	ID            string
	ResidueName   string
	ResidueNumber int
	Chain         string
	AtomNumbers   []int
	Frequency     float64
}

//jSONSeries is one per-frame series document. Occurrences are sent as 0/1, and distances with
//-1 in the frames where the interaction doesn't occur, as JSON has no NaN.
type jSONSeries struct {
	Superfeature string
	EnvPartner   string `json:",omitempty"`
	Occurrences  []int8
	Distances    []float64 `json:",omitempty"`
}

//MakeJSONSummary builds the JSON-serializable summary of a dynophore.
func MakeJSONSummary(D *Dynophore) *JSONSummary {
	ret := &JSONSummary{ID: D.ID(), NFrames: D.NFrames()}
	for _, sf := range D.Superfeatures() {
		jsf := &JSONSuperfeature{
			ID:          sf.ID(),
			FeatureType: sf.FeatureType(),
			AtomNumbers: sf.AtomNumbers(),
			Frequency:   sf.Frequency(),
		}
		for _, ep := range sf.EnvPartners() {
			jsf.EnvPartners = append(jsf.EnvPartners, &JSONEnvPartner{
				ID:            ep.ID(),
				ResidueName:   ep.ResidueName(),
				ResidueNumber: ep.ResidueNumber(),
				Chain:         ep.Chain(),
				AtomNumbers:   ep.AtomNumbers(),
				Frequency:     ep.Frequency(),
			})
		}
		ret.Superfeatures = append(ret.Superfeatures, jsf)
	}
	return ret
}

//TransmitDynophoreJSON encodes the dynophore to out: first the summary document, then, if
//series is true, one document per superfeature and per (superfeature, envpartner) pair with
//the per-frame data.
func TransmitDynophoreJSON(D *Dynophore, series bool, out io.Writer) *JSONError {
	enc := json.NewEncoder(out)
	if err := enc.Encode(MakeJSONSummary(D)); err != nil {
		return MakeJSONError("summary", "TransmitDynophoreJSON", err)
	}
	if !series {
		return nil
	}
	for _, sf := range D.Superfeatures() {
		doc := &jSONSeries{Superfeature: sf.ID(), Occurrences: flags2ints(sf.Occurrences())}
		if err := enc.Encode(doc); err != nil {
			jerr := MakeJSONError("series", "TransmitDynophoreJSON", err)
			jerr.Superfeature = sf.ID()
			return jerr
		}
		for _, ep := range sf.EnvPartners() {
			doc := &jSONSeries{
				Superfeature: sf.ID(),
				EnvPartner:   ep.ID(),
				Occurrences:  flags2ints(ep.Occurrences()),
				Distances:    noNaNs(ep.Distances()),
			}
			if err := enc.Encode(doc); err != nil {
				jerr := MakeJSONError("series", "TransmitDynophoreJSON", err)
				jerr.Superfeature = sf.ID()
				return jerr
			}
		}
	}
	return nil
}

func flags2ints(flags []bool) []int8 {
	ret := make([]int8, len(flags))
	for i, v := range flags {
		if v {
			ret[i] = 1
		}
	}
	return ret
}

func noNaNs(dist []float64) []float64 {
	ret := make([]float64, len(dist))
	for i, v := range dist {
		if v != v { //NaN
			ret[i] = -1
		} else {
			ret[i] = v
		}
	}
	return ret
}
