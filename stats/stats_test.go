package stats

import (
	"fmt"
	"math"
	"testing"

	dyno "github.com/rmera/godyno"
)

func readSample(Te *testing.T) *dyno.Dynophore {
	D, err := dyno.DynophoreRead("../test/1KE7-1")
	if err != nil {
		Te.Fatal(err)
	}
	return D
}

func TestSuperfeatureFrequency(Te *testing.T) {
	D := readSample(Te)
	freqs, err := SuperfeatureFrequency(D, All)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("Superfeature frequencies:", freqs)
	want := map[string]float64{
		"H[4599,4602,4601]":  75.0,
		"HBA[4619]":          100.0, //all-true series is exactly 100
		"AR[4605,4607,4603]": 0.0,   //all-false series is exactly 0
	}
	for id, w := range want {
		if freqs[id] != w {
			Te.Errorf("superfeature %s: expected %4.2f, got %4.2f", id, w, freqs[id])
		}
	}
}

//Selecting "all" must be equivalent to selecting every superfeature explicitly, and to
//selecting nothing at all.
func TestAllSelection(Te *testing.T) {
	D := readSample(Te)
	all, err := SuperfeatureFrequency(D, All)
	if err != nil {
		Te.Fatal(err)
	}
	explicit, err := SuperfeatureFrequency(D, D.SuperfeatureIDs()...)
	if err != nil {
		Te.Fatal(err)
	}
	empty, err := SuperfeatureFrequency(D)
	if err != nil {
		Te.Fatal(err)
	}
	if len(all) != len(explicit) || len(all) != len(empty) {
		Te.Fatalf("selection sizes differ: %d %d %d", len(all), len(explicit), len(empty))
	}
	for id, v := range all {
		if explicit[id] != v || empty[id] != v {
			Te.Errorf("selection mismatch for %s: %4.2f %4.2f %4.2f", id, v, explicit[id], empty[id])
		}
	}
}

func TestUnknownSelection(Te *testing.T) {
	D := readSample(Te)
	_, err := SuperfeatureFrequency(D, "XX[1]")
	if err == nil || !dyno.IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
	_, err = Counts(D, "HBA[4619]", "XX[1]")
	if err == nil || !dyno.IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
}

func TestCounts(Te *testing.T) {
	D := readSample(Te)
	counts, err := Counts(D, "H[4599,4602,4601]")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("H counts:", counts)
	c := counts["H[4599,4602,4601]"]
	if c[Any] != 6 {
		Te.Errorf("expected 6 frames with any partner, got %d", c[Any])
	}
	if c["ILE-10-A"] != 4 || c["ALA-31-A"] != 4 {
		Te.Errorf("wrong per-partner counts: %v", c)
	}
}

func TestEnvPartnerOccurrenceSeries(Te *testing.T) {
	D := readSample(Te)
	ids, series, err := EnvPartnerOccurrenceSeries(D, "H[4599,4602,4601]")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("H partner lanes:", ids)
	if len(ids) != 2 || len(series) != len(ids) {
		Te.Fatalf("expected 2 partner series, got %d ids and %d series", len(ids), len(series))
	}
	counts, err := Counts(D, "H[4599,4602,4601]")
	if err != nil {
		Te.Fatal(err)
	}
	for i, id := range ids {
		if len(series[i]) != D.NFrames() {
			Te.Errorf("partner %s has %d flags for %d frames", id, len(series[i]), D.NFrames())
		}
		n := 0
		for _, f := range series[i] {
			if f {
				n++
			}
		}
		if n != counts["H[4599,4602,4601]"][id] {
			Te.Errorf("partner %s: series holds %d occurrences, counts say %d", id, n, counts["H[4599,4602,4601]"][id])
		}
	}
	_, _, err = EnvPartnerOccurrenceSeries(D, "XX[1]")
	if err == nil || !dyno.IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
}

func TestDistanceSummaries(Te *testing.T) {
	D := readSample(Te)
	sum, err := PairDistanceSummary(D, "HBA[4619]", "LYS-20-A")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Printf("HBA/LYS distances: %+v\n", sum)
	if sum.N != 8 {
		Te.Errorf("expected 8 interacting frames, got %d", sum.N)
	}
	if math.Abs(sum.Mean-2.975) > 1e-10 {
		Te.Errorf("expected mean 2.975, got %g", sum.Mean)
	}
	if sum.Min != 2.85 || sum.Max != 3.15 {
		Te.Errorf("wrong extrema: %4.2f %4.2f", sum.Min, sum.Max)
	}
	//a pair that never interacts has an empty distribution, not an error
	empty, err := PairDistanceSummary(D, "AR[4605,4607,4603]", "PHE-82-A")
	if err != nil {
		Te.Fatal(err)
	}
	if empty.N != 0 || empty.Mean != 0 || empty.Std != 0 {
		Te.Errorf("expected an empty summary, got %+v", empty)
	}
	_, err = PairDistanceSummary(D, "HBA[4619]", "GLY-1-A")
	if err == nil || !dyno.IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
}

func TestDistanceHisto(Te *testing.T) {
	D := readSample(Te)
	h, err := DistanceHisto(D, "H[4599,4602,4601]", "ILE-10-A", nil)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(h.String())
	//the sentinel frames must not count, so the total is the occurrence count
	if h.Total() != 4 {
		Te.Errorf("expected 4 distances in the histogram, got %d", h.Total())
	}
	empty, err := DistanceHisto(D, "AR[4605,4607,4603]", "PHE-82-A", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if empty.Total() != 0 {
		Te.Errorf("expected an empty histogram, got total %d", empty.Total())
	}
}

func TestFrequencyTable(Te *testing.T) {
	D := readSample(Te)
	T, err := NewFrequencyTable(D, All)
	if err != nil {
		Te.Fatal(err)
	}
	cols, rows := T.Dims()
	if rows != 3 || cols != 4 {
		Te.Errorf("expected a 3x4 table, got %dx%d", rows, cols)
	}
	v, err := T.Value("HBA[4619]", "LYS-20-A")
	if err != nil {
		Te.Fatal(err)
	}
	if v != 100.0 {
		Te.Errorf("expected 100 for HBA/LYS, got %4.2f", v)
	}
	//a partner of another superfeature has a zero entry
	v, err = T.Value("HBA[4619]", "ILE-10-A")
	if err != nil {
		Te.Fatal(err)
	}
	if v != 0 {
		Te.Errorf("expected 0 for HBA/ILE, got %4.2f", v)
	}
	_, err = T.Value("HBA[4619]", "GLY-1-A")
	if err == nil || !dyno.IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
}

func TestCoOccurrence(Te *testing.T) {
	D := readSample(Te)
	M, ids, err := CoOccurrence(D, All)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("Co-occurrence over", ids)
	iH := index(ids, "H[4599,4602,4601]")
	iHBA := index(ids, "HBA[4619]")
	iAR := index(ids, "AR[4605,4607,4603]")
	if iH < 0 || iHBA < 0 || iAR < 0 {
		Te.Fatalf("missing superfeature in %v", ids)
	}
	//HBA occurs in every frame, so its co-occurrence with H is H's own frequency
	if M.At(iH, iHBA) != 75.0 {
		Te.Errorf("expected 75 for H/HBA, got %4.2f", M.At(iH, iHBA))
	}
	if M.At(iH, iHBA) != M.At(iHBA, iH) {
		Te.Error("co-occurrence matrix should be symmetric")
	}
	if M.At(iAR, iH) != 0 || M.At(iAR, iAR) != 0 {
		Te.Error("a never-occurring superfeature co-occurs with nothing")
	}
	if M.At(iHBA, iHBA) != 100.0 {
		Te.Errorf("diagonal should hold the own frequency, got %4.2f", M.At(iHBA, iHBA))
	}
}
