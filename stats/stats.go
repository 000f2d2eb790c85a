package stats

import (
	"fmt"
	"math"

	dyno "github.com/rmera/godyno"
)

/*Package stats derives summary views from a loaded dynophore: occurrence counts and
frequencies, distance summaries and distributions, and the matrices behind heatmap plots.
Every operation is a pure function over the immutable model; the dynophore is never
modified.*/

//All is the selection sentinel meaning "every superfeature of the dynophore".
const All = "all"

//selected resolves a selection of superfeature IDs. An empty selection, or one containing
//the All sentinel, means every superfeature, so selecting All is equivalent to passing the
//explicit full ID list. An unknown ID gives an UnknownSelection error.
func selected(D *dyno.Dynophore, sel []string) ([]*dyno.Superfeature, error) {
	if len(sel) == 0 {
		return D.Superfeatures(), nil
	}
	for _, id := range sel {
		if id == All {
			return D.Superfeatures(), nil
		}
	}
	ret := make([]*dyno.Superfeature, 0, len(sel))
	for _, id := range sel {
		sf, err := D.Superfeature(id)
		if err != nil {
			return nil, errDecorate(err, "selected")
		}
		ret = append(ret, sf)
	}
	return ret, nil
}

//SuperfeatureFrequency returns, for each selected superfeature, the percentage of frames in
//which it occurs, rounded to 2 decimals. An all-false series gives exactly 0, an all-true
//series exactly 100.
func SuperfeatureFrequency(D *dyno.Dynophore, sel ...string) (map[string]float64, error) {
	sfs, err := selected(D, sel)
	if err != nil {
		return nil, errDecorate(err, "SuperfeatureFrequency")
	}
	ret := make(map[string]float64, len(sfs))
	for _, sf := range sfs {
		ret[sf.ID()] = sf.Frequency()
	}
	return ret, nil
}

//Any is the key under which Counts and Frequencies report the occurrence of a superfeature
//with any of its partners, next to the per-partner entries.
const Any = "any"

//Counts returns, for each selected superfeature, the number of frames in which it occurs
//(under the Any key) and the number of frames in which each of its environmental partners
//interacts.
func Counts(D *dyno.Dynophore, sel ...string) (map[string]map[string]int, error) {
	sfs, err := selected(D, sel)
	if err != nil {
		return nil, errDecorate(err, "Counts")
	}
	ret := make(map[string]map[string]int, len(sfs))
	for _, sf := range sfs {
		c := make(map[string]int, sf.NEnvPartners()+1)
		c[Any] = sf.Count()
		for _, ep := range sf.EnvPartners() {
			c[ep.ID()] = ep.Count()
		}
		ret[sf.ID()] = c
	}
	return ret, nil
}

//Frequencies is Counts expressed as percentages of the frame count, rounded to 2 decimals.
func Frequencies(D *dyno.Dynophore, sel ...string) (map[string]map[string]float64, error) {
	sfs, err := selected(D, sel)
	if err != nil {
		return nil, errDecorate(err, "Frequencies")
	}
	ret := make(map[string]map[string]float64, len(sfs))
	for _, sf := range sfs {
		f := make(map[string]float64, sf.NEnvPartners()+1)
		f[Any] = sf.Frequency()
		for _, ep := range sf.EnvPartners() {
			f[ep.ID()] = ep.Frequency()
		}
		ret[sf.ID()] = f
	}
	return ret, nil
}

//OccurrenceSeries returns the per-frame 0/1 occurrence series of the selected superfeatures,
//in selection order, ready for barcode plotting.
func OccurrenceSeries(D *dyno.Dynophore, sel ...string) (ids []string, series [][]bool, err error) {
	sfs, err := selected(D, sel)
	if err != nil {
		return nil, nil, errDecorate(err, "OccurrenceSeries")
	}
	for _, sf := range sfs {
		ids = append(ids, sf.ID())
		series = append(series, sf.Occurrences())
	}
	return ids, series, nil
}

//EnvPartnerOccurrenceSeries returns the per-frame 0/1 occurrence series of each
//environmental partner of the given superfeature, ready for barcode plotting. An unknown
//superfeature ID gives an UnknownSelection error.
func EnvPartnerOccurrenceSeries(D *dyno.Dynophore, superfeatureID string) (ids []string, series [][]bool, err error) {
	sf, err := D.Superfeature(superfeatureID)
	if err != nil {
		return nil, nil, errDecorate(err, "EnvPartnerOccurrenceSeries")
	}
	for _, ep := range sf.EnvPartners() {
		ids = append(ids, ep.ID())
		series = append(series, ep.Occurrences())
	}
	return ids, series, nil
}

//Errors

//errDecorate is a helper that asserts that the error implements dyno.Error and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(dyno.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the concrete error type for the stats package. It fulfills dyno.Error and
//dyno.Kinder.
type Error struct {
	message string
	kind    string
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("dynophore stats %s error: %s", err.kind, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Kind returns the error kind
func (err Error) Kind() string { return err.kind }

//round2 rounds to 2 decimals, matching the frequencies the model reports.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
