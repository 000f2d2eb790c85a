package dynoplot

import (
	"fmt"
	"image/color"
	"os"
	"testing"

	dyno "github.com/rmera/godyno"
	"github.com/rmera/godyno/stats"
)

func readSample(Te *testing.T) *dyno.Dynophore {
	D, err := dyno.DynophoreRead("../test/1KE7-1")
	if err != nil {
		Te.Fatal(err)
	}
	return D
}

func TestBarcode(Te *testing.T) {
	D := readSample(Te)
	err := Barcode(D, []string{stats.All}, true, 0, 0, 1, "../test/barcode.png")
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Error(err)
	}
	//an explicit selection and a black barcode
	err = Barcode(D, []string{"HBA[4619]", "H[4599,4602,4601]"}, false, 2, 6, 1, "../test/barcode_sel.png")
	if err != nil {
		Te.Error(err)
	}
	fmt.Println("Barcodes plotted!")
}

func TestEnvPartnerBarcode(Te *testing.T) {
	D := readSample(Te)
	err := EnvPartnerBarcode(D, "H[4599,4602,4601]", true, 0, 0, 1, "../test/barcode_partners.png")
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Error(err)
	}
	//a black one over a frame window
	err = EnvPartnerBarcode(D, "HBA[4619]", false, 2, 6, 1, "../test/barcode_partners_sel.png")
	if err != nil {
		Te.Error(err)
	}
	err = EnvPartnerBarcode(D, "XX[1]", true, 0, 0, 1, "../test/nope_partners.png")
	if err == nil || !dyno.IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
	if _, err := os.Stat("../test/nope_partners.png"); err == nil {
		Te.Error("no plot should be written for a failed query")
	}
}

func TestHeatmap(Te *testing.T) {
	D := readSample(Te)
	T, err := stats.NewFrequencyTable(D, stats.All)
	if err != nil {
		Te.Fatal(err)
	}
	if err := Heatmap(T, D.ID(), "../test/heatmap.png"); err != nil {
		Te.Error(err)
	}
}

func TestDistancePlots(Te *testing.T) {
	D := readSample(Te)
	if err := DistanceSeries(D, "H[4599,4602,4601]", 0, 0, 1, "../test/distances.png"); err != nil {
		Te.Error(err)
	}
	if err := DistanceHist(D, "HBA[4619]", "LYS-20-A", 6, "../test/disthist.png"); err != nil {
		Te.Error(err)
	}
	//a pair that never interacts still plots (empty), as an empty distribution is valid
	if err := DistanceHist(D, "AR[4605,4607,4603]", "PHE-82-A", 6, "../test/disthist_empty.png"); err != nil {
		Te.Error(err)
	}
	//unknown names are UnknownSelection errors, surfaced from the model
	err := DistanceSeries(D, "XX[1]", 0, 0, 1, "../test/nope.png")
	if err == nil || !dyno.IsUnknownSelection(err) {
		Te.Errorf("expected an UnknownSelection error, got %v", err)
	}
	if _, err := os.Stat("../test/nope.png"); err == nil {
		Te.Error("no plot should be written for a failed query")
	}
}

func TestFeatureColor(Te *testing.T) {
	if featureColor("HBA[4619]", true) != (color.RGBA{R: 178, G: 34, B: 34, A: 255}) {
		Te.Error("HBA should color firebrick")
	}
	if featureColor("HBA[4619]", false) != (color.RGBA{A: 255}) {
		Te.Error("colorByType false should color black")
	}
	if featureColor("WEIRD[1]", true) != (color.RGBA{A: 255}) {
		Te.Error("unknown feature types should color black")
	}
}
