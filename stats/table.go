package stats

import (
	dyno "github.com/rmera/godyno"
	"gonum.org/v1/gonum/mat"
)

//FrequencyTable is the superfeatures (rows) x environmental partners (columns) interaction
//frequency table, in percent. A partner that doesn't belong to a given superfeature has a 0
//entry. The table implements the GridXYZ interface of the gonum plotter, so a heatmap can
//render it directly.
type FrequencyTable struct {
	rows []string //superfeature IDs, selection order
	cols []string //envpartner IDs, first-encountered order
	m    *mat.Dense
}

//NewFrequencyTable builds the frequency table for the selected superfeatures. The column set
//is the union of the partners of the selection, in first-encountered order.
func NewFrequencyTable(D *dyno.Dynophore, sel ...string) (*FrequencyTable, error) {
	sfs, err := selected(D, sel)
	if err != nil {
		return nil, errDecorate(err, "NewFrequencyTable")
	}
	T := new(FrequencyTable)
	colindex := make(map[string]int)
	for _, sf := range sfs {
		T.rows = append(T.rows, sf.ID())
		for _, ep := range sf.EnvPartners() {
			if _, ok := colindex[ep.ID()]; !ok {
				colindex[ep.ID()] = len(T.cols)
				T.cols = append(T.cols, ep.ID())
			}
		}
	}
	T.m = mat.NewDense(len(T.rows), len(T.cols), nil)
	for i, sf := range sfs {
		for _, ep := range sf.EnvPartners() {
			T.m.Set(i, colindex[ep.ID()], ep.Frequency())
		}
	}
	return T, nil
}

//Superfeatures returns the row labels of the table, i.e. the superfeature IDs
func (T *FrequencyTable) Superfeatures() []string {
	return append([]string{}, T.rows...)
}

//EnvPartners returns the column labels of the table, i.e. the envpartner IDs
func (T *FrequencyTable) EnvPartners() []string {
	return append([]string{}, T.cols...)
}

//Value returns the frequency, in percent, of the (superfeature, envpartner) entry. An ID
//that is not a label of the table gives an UnknownSelection error.
func (T *FrequencyTable) Value(sfID, epID string) (float64, error) {
	i := index(T.rows, sfID)
	if i < 0 {
		return 0, Error{"no superfeature " + sfID + " in the table", dyno.UnknownSelection, []string{"Value"}}
	}
	j := index(T.cols, epID)
	if j < 0 {
		return 0, Error{"no envpartner " + epID + " in the table", dyno.UnknownSelection, []string{"Value"}}
	}
	return T.m.At(i, j), nil
}

//Matrix returns the table as a gonum matrix, superfeatures as rows. The caller must not
//modify it.
func (T *FrequencyTable) Matrix() mat.Matrix {
	return T.m
}

//Dims, Z, X and Y implement plotter.GridXYZ. Note the column-first convention of that
//interface.

func (T *FrequencyTable) Dims() (c, r int) {
	return len(T.cols), len(T.rows)
}

func (T *FrequencyTable) Z(c, r int) float64 {
	return T.m.At(r, c)
}

func (T *FrequencyTable) X(c int) float64 {
	return float64(c)
}

func (T *FrequencyTable) Y(r int) float64 {
	return float64(r)
}

func index(labels []string, id string) int {
	for i, v := range labels {
		if v == id {
			return i
		}
	}
	return -1
}

//CoOccurrence returns the frame-wise co-occurrence matrix of the selected superfeatures: the
//percentage of frames in which superfeatures i and j both occur, rounded to 2 decimals. The
//matrix is symmetric and its diagonal holds each superfeature's own frequency. The returned
//IDs label the rows/columns.
func CoOccurrence(D *dyno.Dynophore, sel ...string) (*mat.SymDense, []string, error) {
	sfs, err := selected(D, sel)
	if err != nil {
		return nil, nil, errDecorate(err, "CoOccurrence")
	}
	n := D.NFrames()
	ids := make([]string, len(sfs))
	occ := make([][]bool, len(sfs))
	for i, sf := range sfs {
		ids[i] = sf.ID()
		occ[i] = sf.Occurrences()
	}
	M := mat.NewSymDense(len(sfs), nil)
	for i := range sfs {
		for j := i; j < len(sfs); j++ {
			both := 0
			for f := 0; f < n; f++ {
				if occ[i][f] && occ[j][f] {
					both++
				}
			}
			M.SetSym(i, j, round2(float64(both)/float64(n)*100))
		}
	}
	return M, ids, nil
}
