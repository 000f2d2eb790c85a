package stats

import (
	"math"

	dyno "github.com/rmera/godyno"
	"github.com/rmera/godyno/histo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//DistanceSummary describes the interaction distance of one (superfeature, envpartner) pair
//over the frames in which the interaction occurs. A pair that never interacts has N==0 and
//every moment at zero; that is a valid, empty distribution, not an error.
type DistanceSummary struct {
	N    int //frames in which the interaction occurs
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

//summarize computes the summary over the non-sentinel entries of a distance series.
func summarize(distances []float64) DistanceSummary {
	clean := make([]float64, 0, len(distances))
	for _, v := range distances {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return DistanceSummary{}
	}
	ret := DistanceSummary{
		N:    len(clean),
		Mean: stat.Mean(clean, nil),
		Min:  floats.Min(clean),
		Max:  floats.Max(clean),
	}
	if len(clean) > 1 {
		ret.Std = stat.StdDev(clean, nil)
	}
	return ret
}

//PairDistanceSummary returns the distance summary for one (superfeature, envpartner) pair.
//An unknown superfeature or partner ID gives an UnknownSelection error.
func PairDistanceSummary(D *dyno.Dynophore, sfID, epID string) (DistanceSummary, error) {
	sf, err := D.Superfeature(sfID)
	if err != nil {
		return DistanceSummary{}, errDecorate(err, "PairDistanceSummary")
	}
	ep, err := sf.EnvPartner(epID)
	if err != nil {
		return DistanceSummary{}, errDecorate(err, "PairDistanceSummary")
	}
	return summarize(ep.Distances()), nil
}

//DistanceSummaries returns the distance summaries of every (superfeature, envpartner) pair
//of the selected superfeatures, keyed by superfeature then partner ID.
func DistanceSummaries(D *dyno.Dynophore, sel ...string) (map[string]map[string]DistanceSummary, error) {
	sfs, err := selected(D, sel)
	if err != nil {
		return nil, errDecorate(err, "DistanceSummaries")
	}
	ret := make(map[string]map[string]DistanceSummary, len(sfs))
	for _, sf := range sfs {
		m := make(map[string]DistanceSummary, sf.NEnvPartners())
		for _, ep := range sf.EnvPartners() {
			m[ep.ID()] = summarize(ep.Distances())
		}
		ret[sf.ID()] = m
	}
	return ret, nil
}

//DistanceHisto returns the distance distribution of one (superfeature, envpartner) pair as a
//histogram. If dividers is nil, histo.DefaultDividers is used. The sentinel entries of the
//series don't count, so the histogram total equals the pair's occurrence count (as long as no
//real distance falls off the divider range).
func DistanceHisto(D *dyno.Dynophore, sfID, epID string, dividers []float64) (*histo.Data, error) {
	sf, err := D.Superfeature(sfID)
	if err != nil {
		return nil, errDecorate(err, "DistanceHisto")
	}
	ep, err := sf.EnvPartner(epID)
	if err != nil {
		return nil, errDecorate(err, "DistanceHisto")
	}
	if dividers == nil {
		dividers = histo.DefaultDividers()
	}
	return histo.NewData(dividers, ep.Distances(), sfID+"/"+epID), nil
}
