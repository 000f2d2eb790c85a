/*
 * files.go, part of godyno.
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
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

/*The on-disk schema is the one the dynophore generator writes: one plain-text file per
superfeature, holding a 0/1 occurrence flag per line (one line per trajectory frame), and one
file per (superfeature, environmental partner) pair, holding "distance,flag" per line. The
whole identity of each series is encoded in the underscore-separated filename:

	1KE7-1_data_superfeature_H[4599,4602,4601]_100.0.txt
	1KE7-1_data_superfeature_HBA[4619]_12.3_envpartner_ASP_86_A[1313]_1.6.txt

Files may additionally carry a .gz or .zst suffix, in which case they are decompressed on the
fly. Everything else in the directory is ignored.*/

//DynophoreRead reads the dynophore contained in the given directory and returns it, or an
//error of kind DataNotFound (directory or required file absent) or MalformedData (a file
//could not be understood, or the series don't share one length).
func DynophoreRead(dir string) (*Dynophore, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, DataError{err.Error(), dir, DataNotFound, []string{"DynophoreRead"}, true}
	}
	var comps []*fileComponents
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		c, err := getFileComponents(e.Name())
		if err != nil {
			return nil, errDecorate(err, "DynophoreRead")
		}
		if c == nil {
			continue //not a dynophore data file
		}
		comps = append(comps, c)
	}
	if len(comps) == 0 {
		return nil, DataError{"no dynophore data files in directory", dir, DataNotFound, []string{"DynophoreRead"}, true}
	}
	dynid := comps[0].dynophoreID
	var superfeatures []*Superfeature
	for _, sfc := range comps {
		if sfc.envPartnerID != "" {
			continue
		}
		occ, err := readOccurrences(filepath.Join(dir, sfc.filename))
		if err != nil {
			return nil, errDecorate(err, "DynophoreRead")
		}
		var partners []*EnvPartner
		for _, epc := range comps {
			if epc.envPartnerID == "" || epc.superfeatureID != sfc.superfeatureID {
				continue
			}
			epocc, dist, err := readPartnerSeries(filepath.Join(dir, epc.filename))
			if err != nil {
				return nil, errDecorate(err, "DynophoreRead")
			}
			ep, err := NewEnvPartner(epc.envPartnerID, epc.envPartnerResidueName, epc.envPartnerResidueNumber, epc.envPartnerChain, epc.envPartnerAtomNumbers, epocc, dist)
			if err != nil {
				return nil, errDecorate(err, "DynophoreRead")
			}
			partners = append(partners, ep)
		}
		if len(partners) == 0 {
			return nil, DataError{fmt.Sprintf("superfeature %s has no envpartner file", sfc.superfeatureID), dir, DataNotFound, []string{"DynophoreRead"}, true}
		}
		sf, err := NewSuperfeature(sfc.superfeatureID, sfc.superfeatureType, sfc.superfeatureAtomNumbers, occ, partners)
		if err != nil {
			return nil, errDecorate(err, "DynophoreRead")
		}
		superfeatures = append(superfeatures, sf)
	}
	//an envpartner file whose superfeature occurrence file is absent means the directory
	//is incomplete, not merely noisy.
	for _, epc := range comps {
		if epc.envPartnerID == "" {
			continue
		}
		found := false
		for _, sf := range superfeatures {
			if sf.ID() == epc.superfeatureID {
				found = true
				break
			}
		}
		if !found {
			return nil, DataError{fmt.Sprintf("envpartner file %s present but no occurrence file for superfeature %s", epc.filename, epc.superfeatureID), dir, DataNotFound, []string{"DynophoreRead"}, true}
		}
	}
	D, err := NewDynophore(dynid, superfeatures)
	if err != nil {
		return nil, errDecorate(err, "DynophoreRead")
	}
	return D, nil
}

//fileComponents holds the identity a dynophore filename encodes. For a superfeature
//occurrence file the envPartner fields are at their zero values.
type fileComponents struct {
	filename                string
	dynophoreID             string
	superfeatureID          string
	superfeatureType        string
	superfeatureAtomNumbers []int
	envPartnerID            string
	envPartnerResidueName   string
	envPartnerResidueNumber int
	envPartnerChain         string
	envPartnerAtomNumbers   []int
}

//getFileComponents parses the underscore-separated dynophore filename schema. It returns nil
//(and no error) for files that are not dynophore data files, so callers can skip them.
func getFileComponents(filename string) (*fileComponents, error) {
	stem := filename
	for _, suf := range []string{".zst", ".gz"} {
		stem = strings.TrimSuffix(stem, suf)
	}
	if !strings.HasSuffix(stem, ".txt") {
		return nil, nil
	}
	stem = strings.TrimSuffix(stem, ".txt")
	fields := strings.Split(stem, "_")
	if len(fields) != 5 && len(fields) != 10 {
		return nil, nil
	}
	if fields[1] != "data" || fields[2] != "superfeature" {
		return nil, nil
	}
	c := new(fileComponents)
	c.filename = filename
	c.dynophoreID = fields[0]
	c.superfeatureID = fields[3]
	var err error
	c.superfeatureType, c.superfeatureAtomNumbers, err = splitBracketed(fields[3])
	if err != nil {
		return nil, DataError{err.Error(), filename, MalformedData, []string{"getFileComponents"}, true}
	}
	if len(fields) == 5 {
		return c, nil
	}
	if fields[5] != "envpartner" {
		return nil, nil
	}
	c.envPartnerResidueName = fields[6]
	c.envPartnerResidueNumber, err = strconv.Atoi(fields[7])
	if err != nil {
		return nil, DataError{"can't parse residue number: " + err.Error(), filename, MalformedData, []string{"getFileComponents"}, true}
	}
	c.envPartnerChain, c.envPartnerAtomNumbers, err = splitBracketed(fields[8])
	if err != nil {
		return nil, DataError{err.Error(), filename, MalformedData, []string{"getFileComponents"}, true}
	}
	c.envPartnerID = strings.Join([]string{fields[6], fields[7], c.envPartnerChain}, "-")
	return c, nil
}

//splitBracketed parses strings of the form "HBA[4619,4620]" into the part before the bracket
//and the comma-separated ints within.
func splitBracketed(s string) (string, []int, error) {
	open := strings.Index(s, "[")
	if open < 0 || !strings.HasSuffix(s, "]") {
		return "", nil, fmt.Errorf("expected 'name[n1,n2,...]', got '%s'", s)
	}
	name := s[:open]
	var nums []int
	for _, f := range strings.Split(s[open+1:len(s)-1], ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return "", nil, fmt.Errorf("can't parse atom number '%s' in '%s': %s", f, s, err.Error())
		}
		nums = append(nums, n)
	}
	return name, nums, nil
}

//openData opens a data file for reading, decompressing by suffix the same way the stf
//trajectory reader of goChem selects its decompressor.
func openData(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, DataError{err.Error(), path, DataNotFound, []string{"openData"}, true}
	}
	switch {
	case strings.HasSuffix(path, ".zst"):
		r, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, DataError{"can't read zstd data: " + err.Error(), path, MalformedData, []string{"openData"}, true}
		}
		return zstdql{r.Close, f, r}, nil
	case strings.HasSuffix(path, ".gz"):
		r, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, DataError{"can't read gzip data: " + err.Error(), path, MalformedData, []string{"openData"}, true}
		}
		return gzql{f, r}, nil
	default:
		return f, nil
	}
}

//zstd.Decoder.Close returns nothing, so it can't be an io.ReadCloser by itself.
type zstdql struct {
	closeql func()
	f       *os.File
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return z.f.Close()
}

//gzip.Reader.Close does not close the underlying file.
type gzql struct {
	f *os.File
	*gzip.Reader
}

//Close reports the decompressor's error, if any, so a truncated or corrupt stream is not
//silently dropped, and closes the underlying file either way.
func (g gzql) Close() error {
	err := g.Reader.Close()
	if err2 := g.f.Close(); err == nil {
		err = err2
	}
	return err
}

//readOccurrences reads a superfeature occurrence file: one 0/1 flag per line.
func readOccurrences(path string) ([]bool, error) {
	r, err := openData(path)
	if err != nil {
		return nil, errDecorate(err, "readOccurrences")
	}
	defer r.Close()
	var occ []bool
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		flag, err := parseFlag(line)
		if err != nil {
			return nil, DataError{fmt.Sprintf("frame %d: %s", len(occ), err.Error()), path, MalformedData, []string{"readOccurrences"}, true}
		}
		occ = append(occ, flag)
	}
	if err := scanner.Err(); err != nil {
		return nil, DataError{err.Error(), path, MalformedData, []string{"readOccurrences"}, true}
	}
	if len(occ) == 0 {
		return nil, DataError{"empty occurrence series", path, MalformedData, []string{"readOccurrences"}, true}
	}
	return occ, nil
}

//readPartnerSeries reads an envpartner file: "distance,flag" per line.
func readPartnerSeries(path string) ([]bool, []float64, error) {
	r, err := openData(path)
	if err != nil {
		return nil, nil, errDecorate(err, "readPartnerSeries")
	}
	defer r.Close()
	var occ []bool
	var dist []float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return nil, nil, DataError{fmt.Sprintf("frame %d: expected 'distance,flag', got '%s'", len(occ), line), path, MalformedData, []string{"readPartnerSeries"}, true}
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, nil, DataError{fmt.Sprintf("frame %d: can't parse distance: %s", len(occ), err.Error()), path, MalformedData, []string{"readPartnerSeries"}, true}
		}
		flag, err := parseFlag(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, nil, DataError{fmt.Sprintf("frame %d: %s", len(occ), err.Error()), path, MalformedData, []string{"readPartnerSeries"}, true}
		}
		occ = append(occ, flag)
		dist = append(dist, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, DataError{err.Error(), path, MalformedData, []string{"readPartnerSeries"}, true}
	}
	if len(occ) == 0 {
		return nil, nil, DataError{"empty partner series", path, MalformedData, []string{"readPartnerSeries"}, true}
	}
	return occ, dist, nil
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("occurrence flag must be 0 or 1, got '%s'", s)
	}
}
