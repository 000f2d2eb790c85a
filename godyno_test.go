/*
 * godyno_test.go, part of godyno.
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
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

//TestDynophoreRead reads the sample dynophore from the test directory and checks the loaded
//aggregate against the values the files encode.
func TestDynophoreRead(Te *testing.T) {
	D, err := DynophoreRead("test/1KE7-1")
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Fatal(err)
	}
	fmt.Println("Dynophore read!", D.ID(), D.NFrames(), D.SuperfeatureIDs())
	if D.ID() != "1KE7-1" {
		Te.Errorf("wrong dynophore ID: %s", D.ID())
	}
	if D.NFrames() != 8 {
		Te.Errorf("expected 8 frames, got %d", D.NFrames())
	}
	if D.NSuperfeatures() != 3 {
		Te.Errorf("expected 3 superfeatures, got %d", D.NSuperfeatures())
	}
	//every series in the aggregate shares the frame count
	for _, sf := range D.Superfeatures() {
		if len(sf.Occurrences()) != D.NFrames() {
			Te.Errorf("superfeature %s has %d flags for %d frames", sf.ID(), len(sf.Occurrences()), D.NFrames())
		}
		for _, ep := range sf.EnvPartners() {
			if ep.NFrames() != D.NFrames() {
				Te.Errorf("partner %s of %s has %d frames instead of %d", ep.ID(), sf.ID(), ep.NFrames(), D.NFrames())
			}
		}
	}
	freqs := map[string]float64{
		"H[4599,4602,4601]":  75.0,
		"HBA[4619]":          100.0,
		"AR[4605,4607,4603]": 0.0,
	}
	for id, want := range freqs {
		sf, err := D.Superfeature(id)
		if err != nil {
			Te.Fatal(err)
		}
		if sf.Frequency() != want {
			Te.Errorf("superfeature %s: expected frequency %4.2f, got %4.2f", id, want, sf.Frequency())
		}
	}
	//the gzipped partner file must have been read like the plain ones
	h, _ := D.Superfeature("H[4599,4602,4601]")
	ala, err := h.EnvPartner("ALA-31-A")
	if err != nil {
		Te.Fatal(err)
	}
	if ala.Count() != 4 || ala.Frequency() != 50.0 {
		Te.Errorf("ALA-31-A: expected count 4 freq 50, got %d %4.2f", ala.Count(), ala.Frequency())
	}
}

//The number of non-sentinel distances of a partner always equals its occurrence count.
func TestDistanceSentinel(Te *testing.T) {
	D, err := DynophoreRead("test/1KE7-1")
	if err != nil {
		Te.Fatal(err)
	}
	for _, sf := range D.Superfeatures() {
		for _, ep := range sf.EnvPartners() {
			nreal := 0
			for _, d := range ep.Distances() {
				if !math.IsNaN(d) {
					nreal++
				}
			}
			if nreal != ep.Count() {
				Te.Errorf("%s/%s: %d real distances but %d occurrences", sf.ID(), ep.ID(), nreal, ep.Count())
			}
		}
	}
	//the never-occurring superfeature has an all-sentinel distance series
	ar, _ := D.Superfeature("AR[4605,4607,4603]")
	phe, _ := ar.EnvPartner("PHE-82-A")
	if phe.Count() != 0 {
		Te.Errorf("PHE-82-A should never interact, got count %d", phe.Count())
	}
	if !math.IsNaN(phe.Distance(0)) {
		Te.Error("distances of a non-interacting frame should be NaN")
	}
}

//copySample rebuilds the sample directory in a scratch one. Files for which handle returns
//true are written by handle itself; the rest are copied verbatim.
func copySample(Te *testing.T, handle func(dir, name string, data []byte) bool) string {
	dir := Te.TempDir()
	entries, err := os.ReadDir("test/1KE7-1")
	if err != nil {
		Te.Fatal(err)
	}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join("test/1KE7-1", e.Name()))
		if err != nil {
			Te.Fatal(err)
		}
		if handle != nil && handle(dir, e.Name(), data) {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0644); err != nil {
			Te.Fatal(err)
		}
	}
	return dir
}

//TestZstdRead rebuilds the sample directory with one partner series zstd-compressed and
//checks that it loads exactly like the plain file does.
func TestZstdRead(Te *testing.T) {
	dir := copySample(Te, func(dir, name string, data []byte) bool {
		if !strings.Contains(name, "LYS") {
			return false
		}
		f, err := os.Create(filepath.Join(dir, name+".zst"))
		if err != nil {
			Te.Fatal(err)
		}
		w, err := zstd.NewWriter(f)
		if err != nil {
			Te.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			Te.Fatal(err)
		}
		if err := w.Close(); err != nil {
			Te.Fatal(err)
		}
		if err := f.Close(); err != nil {
			Te.Fatal(err)
		}
		return true
	})
	D, err := DynophoreRead(dir)
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Fatal(err)
	}
	hba, err := D.Superfeature("HBA[4619]")
	if err != nil {
		Te.Fatal(err)
	}
	lys, err := hba.EnvPartner("LYS-20-A")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("zstd partner read!", lys.ID(), lys.Count(), lys.Frequency())
	if lys.NFrames() != 8 || lys.Count() != 8 || lys.Frequency() != 100.0 {
		Te.Errorf("LYS-20-A from zstd: expected 8 frames, count 8, freq 100, got %d %d %4.2f", lys.NFrames(), lys.Count(), lys.Frequency())
	}
	if math.Abs(lys.Distance(0)-2.85) > 1e-10 {
		Te.Errorf("wrong first distance from the zstd series: %g", lys.Distance(0))
	}
}

//A gzip stream cut short must surface as MalformedData, never as a silently shorter series.
func TestTruncatedGzip(Te *testing.T) {
	dir := copySample(Te, func(dir, name string, data []byte) bool {
		if !strings.HasSuffix(name, ".gz") {
			return false
		}
		if err := os.WriteFile(filepath.Join(dir, name), data[:len(data)/2], 0644); err != nil {
			Te.Fatal(err)
		}
		return true
	})
	_, err := DynophoreRead(dir)
	if err == nil || !IsMalformed(err) {
		Te.Errorf("truncated gzip: expected MalformedData, got %v", err)
	}
	fmt.Println("truncated gzip:", err)
}

func TestUnknownSelection(Te *testing.T) {
	D, err := DynophoreRead("test/1KE7-1")
	if err != nil {
		Te.Fatal(err)
	}
	_, err = D.Superfeature("XX[1]")
	if err == nil || !IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
	sf, _ := D.Superfeature("HBA[4619]")
	_, err = sf.EnvPartner("GLY-1-A")
	if err == nil || !IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
}

//TestBrokenDirectories checks that incomplete or inconsistent directories fail with the
//right error kind, not a generic one.
func TestBrokenDirectories(Te *testing.T) {
	_, err := DynophoreRead("test/does-not-exist")
	if err == nil || !IsNotFound(err) {
		Te.Errorf("absent directory: expected DataNotFound, got %v", err)
	}
	_, err = DynophoreRead("test/missing-partner")
	if err == nil || !IsNotFound(err) {
		Te.Errorf("superfeature without partner file: expected DataNotFound, got %v", err)
	}
	fmt.Println("missing partner:", err)
	_, err = DynophoreRead("test/orphan-partner")
	if err == nil || !IsNotFound(err) {
		Te.Errorf("partner without superfeature file: expected DataNotFound, got %v", err)
	}
	_, err = DynophoreRead("test/mismatch")
	if err == nil || !IsMalformed(err) {
		Te.Errorf("length mismatch: expected MalformedData, got %v", err)
	}
	fmt.Println("mismatch:", err)
}

func TestConstructorValidation(Te *testing.T) {
	_, err := NewEnvPartner("ASP-86-A", "ASP", 86, "A", []int{1313}, []bool{true, false}, []float64{1.6})
	if err == nil || !IsMalformed(err) {
		Te.Errorf("expected MalformedData for unequal series, got %v", err)
	}
	_, err = NewDynophore("empty", nil)
	if err == nil || !IsMalformed(err) {
		Te.Errorf("expected MalformedData for an empty dynophore, got %v", err)
	}
}

func TestJSONTransmit(Te *testing.T) {
	D, err := DynophoreRead("test/1KE7-1")
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if jerr := TransmitDynophoreJSON(D, true, &buf); jerr != nil {
		Te.Fatal(jerr)
	}
	dec := json.NewDecoder(&buf)
	summary := new(JSONSummary)
	if err := dec.Decode(summary); err != nil {
		Te.Fatal(err)
	}
	fmt.Println("JSON summary:", summary.ID, summary.NFrames)
	if summary.ID != "1KE7-1" || summary.NFrames != 8 || len(summary.Superfeatures) != 3 {
		Te.Errorf("wrong summary: %+v", summary)
	}
	//one series document per superfeature and per pair follows the summary
	ndocs := 0
	for dec.More() {
		var doc map[string]interface{}
		if err := dec.Decode(&doc); err != nil {
			Te.Fatal(err)
		}
		ndocs++
	}
	if ndocs != 7 { //3 superfeatures + 4 pairs
		Te.Errorf("expected 7 series documents, got %d", ndocs)
	}
}
