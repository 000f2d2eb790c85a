package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Package histo holds interaction-distance histograms: the distribution of the distance
//between a superfeature and one of its environmental partners, over the frames where the
//interaction occurs.

//DefaultDividers returns dividers covering the usual ligand-interaction distance range,
//0 to 8 A in 0.25 A bins.
func DefaultDividers() []float64 {
	return Dividers(0, 8, 0.25)
}

//Dividers returns bin dividers from min to max (inclusive) with the given bin width.
//It panics on a non-positive width or an empty range, as those are caller bugs.
func Dividers(min, max, width float64) []float64 {
	if width <= 0 || max <= min {
		panic(fmt.Sprintf("goDyno/histo.Dividers: ill-formed range %4.2f-%4.2f width %4.2f", min, max, width))
	}
	var ret []float64
	for v := min; v < max; v += width {
		ret = append(ret, v)
	}
	return append(ret, max)
}

//Data is one distance histogram. Distances outside the divider range, and the NaN
//"not interacting" sentinel, are omitted from the counts.
type Data struct {
	id         string //the interaction the distances belong to, e.g. "HBA[4619]/ASP-86-A"
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

//NewData returns a new histogram from the dividers and rawdata given. rawdata can be nil, in
//which case an empty histogram is created. NaNs in rawdata are skipped, not counted. If an ID
//for the histogram is given, it will be set; if not, the ID will be empty.
func NewData(dividers []float64, rawdata []float64, ID ...string) *Data {
	d := new(Data)
	//copy the slice to avoid somebody changing it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d
}

//ReHisto recounts the histogram from rawdata with the given dividers. NaNs and values off
//the divider range are removed before counting.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	clean := make([]float64, 0, len(rawdata))
	for _, v := range rawdata {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	sort.Float64s(clean)
	//stat.Histogram just panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(clean, dividers[len(dividers)-1])
	mini := sort.SearchFloat64s(clean, dividers[0])
	if maxi < len(clean) {
		clean = clean[:maxi]
	}
	if mini != 0 {
		clean = clean[mini:]
	}
	D.total = len(clean)
	D.normalized = false
	D.histo = stat.Histogram(nil, dividers, clean, nil)
}

//ID returns the ID of the histogram
func (D *Data) ID() string {
	return D.id
}

//Total returns the number of distances counted in the histogram
func (D *Data) Total() int {
	return D.total
}

//AddData adds the given distance(s) to the histogram. NaNs and values off the divider range
//are omitted and don't count towards the total.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	for _, v := range point {
		if math.IsNaN(v) {
			continue
		}
		for j, w := range D.dividers {
			if j == len(D.dividers)-1 {
				break
			}
			if w <= v && v < D.dividers[j+1] {
				D.histo[j]++
				D.total++
				break
			}
		}
	}
	if norma {
		D.Normalize()
	}
}

//Normalized returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize scales the histogram to relative frequencies
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize takes the histogram back to absolute counts
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//CopyDividers copies the dividers of the histogram, into dest if given and large enough
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	return floats.ScaleTo(d, 1, D.dividers)
}

//Copy copies the counts of the histogram, into dest if given and large enough
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	return floats.ScaleTo(d, 1, D.histo)
}

//View returns the counts of the histogram. The caller must not modify them.
func (D *Data) View() []float64 {
	return D.histo
}

//Sum returns the sum of the counts, i.e. the total if un-normalized, ~1 if normalized
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %s, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	d := make([]string, 0, len(D.dividers)-1)
	h := make([]string, 0, len(D.dividers)-1)
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

func (D *Data) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		ID         string    `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		ID:         D.id,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		ID         string    `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}

	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}
	D.id = a.ID
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0]
		if len(dest[0]) > N {
			d = dest[0][:N] //floats.ScaleTo wants both slices to _match_
		}
	} else {
		d = make([]float64, N)
	}
	return d
}
